package api

import (
	"errors"                       // Error inspection
	"game_api/internal/middleware" // Request IDs and error messages
	"game_api/internal/service"    // Service error kinds
	"net/http"                     // HTTP status codes
	"time"                         // Error timestamps

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// statusFor maps a service error kind to its HTTP status
func statusFor(kind error) int {
	switch {
	case errors.Is(kind, service.ErrValidation), errors.Is(kind, service.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(kind, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(kind, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body. Unexpected errors are logged and
// answered with a generic message.
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		if status := statusFor(svcErr.Kind); status != http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": svcErr.Message})
			return
		}
	}
	// Log the error with context
	logrus.WithFields(logrus.Fields{
		"request_id": middleware.RequestIDFrom(c), // Request ID
		"method":     c.Request.Method,            // HTTP method
		"path":       c.FullPath(),                // Route
		"error":      err.Error(),                 // Error message
	}).Error("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":     middleware.InternalErrorMessage, // Generic message
		"timestamp": time.Now().UTC(),                // When it happened
	})
}

// requireCaller returns the authenticated caller or answers 401
func requireCaller(c *gin.Context) (service.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return service.Caller{}, false
	}
	return caller, true
}
