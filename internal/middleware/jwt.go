package middleware

import (
	"game_api/internal/service" // Caller identity
	"game_api/internal/utils"   // JWT utility functions
	"net/http"                  // HTTP status codes
	"strings"                   // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

const callerKey = "caller" // Context key of the authenticated service.Caller

// JWTAuthMiddleware validates JWT tokens and rejects requests without a valid one
func JWTAuthMiddleware(opts utils.TokenOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, opts)         // Parse the JWT token
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.FullPath(), // Route
				"error": err.Error(),  // Error message
			}).Debug("Rejected session token")
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		setCaller(c, claims) // Store caller in context
		c.Next()             // Proceed to the next handler
	}
}

// OptionalJWTMiddleware identifies the caller when a valid token is present and
// treats the request as anonymous otherwise
func OptionalJWTMiddleware(opts utils.TokenOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if tokenStr, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			if claims, err := utils.ParseJWT(tokenStr, opts); err == nil {
				setCaller(c, claims)
			}
		}
		c.Next()
	}
}

func setCaller(c *gin.Context, claims *utils.Claims) {
	c.Set(callerKey, service.Caller{
		UserID:   claims.UserID,   // User ID
		Username: claims.Username, // Username
		Role:     claims.Role,     // Role
	})
}

// CallerFrom returns the caller stored by the JWT middlewares
func CallerFrom(c *gin.Context) (service.Caller, bool) {
	v, exists := c.Get(callerKey)
	if !exists {
		return service.Caller{}, false
	}
	caller, ok := v.(service.Caller)
	return caller, ok
}
