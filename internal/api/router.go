package api

import (
	"game_api/internal/metrics"    // Prometheus instrumentation
	"game_api/internal/middleware" // Auth, recovery and request IDs
	"game_api/internal/service"    // Domain services
	"game_api/internal/utils"      // Token options
	"net/http"                     // HTTP status codes
	"time"                         // CORS max age

	"github.com/gin-contrib/cors" // CORS for the browser dashboard
	"github.com/gin-gonic/gin"    // Gin web framework
	"gorm.io/gorm"                // GORM ORM library
)

// Services bundles the domain services the routes call into
type Services struct {
	Credentials *service.Credentials
	Players     *service.PlayerService
	Characters  *service.CharacterService
	Items       *service.ItemService
	Scores      *service.ScoreService
}

// RouterOptions configures the HTTP surface
type RouterOptions struct {
	Tokens         utils.TokenOptions // Session token settings
	CORSOrigins    []string           // Allowed browser origins, "*" allows all
	TrustedProxies []string           // Proxies whose forwarded headers are trusted
}

// corsMiddleware allows the dashboard origins to call the API and read the pagination headers
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"X-Total-Count", "X-Page", "X-Page-Size", "X-Total-Pages", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
		}
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// NewRouter builds the gin engine with every route of the API
func NewRouter(db *gorm.DB, svc Services, opts RouterOptions) (*gin.Engine, error) {
	useJSONFieldNames()

	r := gin.New()
	// Set trusted proxies for security
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(middleware.RequestID(), middleware.Recovery(), metrics.Middleware())
	if len(opts.CORSOrigins) > 0 {
		r.Use(corsMiddleware(opts.CORSOrigins))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/register", RegisterHandler(svc.Credentials, opts.Tokens))
	auth.POST("/login", LoginHandler(svc.Credentials, opts.Tokens))
	api.GET("/scores/leaderboard/:gameMode", middleware.OptionalJWTMiddleware(opts.Tokens), LeaderboardHandler(svc.Scores))

	// Authenticated routes
	authed := api.Group("", middleware.JWTAuthMiddleware(opts.Tokens))

	authed.GET("/players", ListPlayersHandler(svc.Players))
	authed.POST("/players", CreatePlayerHandler(svc.Players))
	authed.GET("/players/:id", GetPlayerHandler(svc.Players))
	authed.PUT("/players/:id", UpdatePlayerHandler(svc.Players))
	authed.DELETE("/players/:id", DeletePlayerHandler(svc.Players))

	authed.GET("/characters", ListCharactersHandler(svc.Characters))
	authed.POST("/characters", CreateCharacterHandler(svc.Characters))
	authed.GET("/characters/:id", GetCharacterHandler(svc.Characters))
	authed.PUT("/characters/:id", UpdateCharacterHandler(svc.Characters))
	authed.DELETE("/characters/:id", DeleteCharacterHandler(svc.Characters))

	authed.GET("/items", ListItemsHandler(svc.Items))
	authed.POST("/items", CreateItemHandler(svc.Items))
	authed.GET("/items/:id", GetItemHandler(svc.Items))
	authed.PUT("/items/:id", UpdateItemHandler(svc.Items))
	authed.DELETE("/items/:id", DeleteItemHandler(svc.Items))

	authed.GET("/scores", ListScoresHandler(svc.Scores))
	authed.POST("/scores", SubmitScoreHandler(svc.Scores))
	authed.GET("/scores/:id", GetScoreHandler(svc.Scores))
	authed.DELETE("/scores/:id", DeleteScoreHandler(svc.Scores))

	// Admin routes
	admin := authed.Group("/admin", middleware.AdminOnlyMiddleware(db))
	admin.GET("/users", ListUsersHandler(svc.Credentials))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return r, nil
}
