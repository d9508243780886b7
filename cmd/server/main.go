package main

import (
	"context"                   // Shutdown deadline
	"errors"                    // Error inspection
	"game_api/internal/api"     // HTTP routes and handlers
	"game_api/internal/config"  // Custom package for configuration
	"game_api/internal/db"      // Database connection
	"game_api/internal/service" // Domain services
	"game_api/internal/utils"   // Tokens, redis and locks
	"net/http"                  // HTTP server
	"os"                        // Process signals
	"os/signal"                 // Signal notification
	"syscall"                   // SIGTERM
	"time"                      // Timeouts

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing cost
)

// setupLogger configures logrus from the environment
func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// newLocker returns a redis lock when REDIS_ADDR is set and an in-process lock otherwise
func newLocker(ctx context.Context, cfg *config.Config) (service.Locker, func(), error) {
	if cfg.RedisAddr == "" {
		logrus.Warn("REDIS_ADDR not set, score locks are local to this instance")
		return utils.NewLocalLocker(), func() {}, nil
	}
	rdb, err := utils.NewRedisClient(ctx, utils.RedisOptions{
		Addr:     cfg.RedisAddr,     // Redis server address
		Password: cfg.RedisPass,     // Redis password
		DB:       cfg.RedisDB,       // Redis database number
		PoolSize: cfg.RedisPoolSize, // Pool size
	})
	if err != nil {
		return nil, nil, err
	}
	return utils.NewRedisLocker(rdb, cfg.ScoreLockTTL), func() { _ = rdb.Close() }, nil
}

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	setupLogger(cfg)

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	locker, closeLocker, err := newLocker(ctx, cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	defer closeLocker()

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	authority := service.NewAuthority(gdb, cfg.UnownedItemsShared)
	router, err := api.NewRouter(gdb, api.Services{
		Credentials: service.NewCredentials(gdb, bcrypt.DefaultCost),
		Players:     service.NewPlayerService(gdb, authority),
		Characters:  service.NewCharacterService(gdb, authority),
		Items:       service.NewItemService(gdb, authority),
		Scores:      service.NewScoreService(gdb, authority, locker),
	}, api.RouterOptions{
		Tokens: utils.TokenOptions{
			Secret:   cfg.JWTSecret,
			TTL:      cfg.TokenTTL(),
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
		},
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: []string{"127.0.0.1"},
	})
	if err != nil {
		logrus.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logrus.WithField("port", cfg.AppPort).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("graceful shutdown failed: %v", err)
	}
}
