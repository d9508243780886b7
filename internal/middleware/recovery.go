package middleware

import (
	"net/http" // HTTP status codes
	"time"     // Error timestamps

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// InternalErrorMessage is the only detail clients see for unexpected failures
const InternalErrorMessage = "An internal server error occurred. Please try again later."

// Recovery turns panics into a 500 response instead of dropping the connection
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(requestIDKey), // Request ID
			"method":     c.Request.Method,          // HTTP method
			"path":       c.Request.URL.Path,        // Request path
			"panic":      recovered,                 // Recovered value
		}).Error("An unhandled exception occurred")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     InternalErrorMessage,
			"timestamp": time.Now().UTC(),
		})
	})
}
