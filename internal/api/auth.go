package api

import (
	"errors"                    // Error inspection
	"game_api/internal/domain"  // Domain models
	"game_api/internal/metrics" // Auth counters
	"game_api/internal/service" // Credentials
	"game_api/internal/utils"   // Token issuing
	"net/http"                  // HTTP status codes
	"time"                      // Token expiry

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`  // Unique username
	Email    string `json:"email" binding:"required,email,max=255"`    // Unique email
	Password string `json:"password" binding:"required,min=6,max=100"` // Plain password, hashed before storage
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token      string    `json:"token"`      // Signed JWT
	Username   string    `json:"username"`   // Username
	Email      string    `json:"email"`      // Email
	Role       string    `json:"role"`       // Player or Admin
	Expiration time.Time `json:"expiration"` // Token expiry
}

// issueSession signs a token for user and writes the auth response
func issueSession(c *gin.Context, status int, user *domain.User, opts utils.TokenOptions) {
	token, exp, err := utils.GenerateJWT(*user, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, AuthResponse{
		Token:      token,
		Username:   user.Username,
		Email:      user.Email,
		Role:       user.Role,
		Expiration: exp,
	})
}

// outcome labels an auth attempt for metrics
func outcome(err error) string {
	var svcErr *service.Error
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &svcErr):
		return "rejected"
	default:
		return "error"
	}
}

// RegisterHandler creates a user with the Player role and signs them in
func RegisterHandler(creds *service.Credentials, opts utils.TokenOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		user, err := creds.Register(c.Request.Context(), req.Username, req.Email, req.Password)
		metrics.AuthAttempt("register", outcome(err))
		if err != nil {
			respondError(c, err)
			return
		}
		// Log the registration
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // Username
		}).Info("User registered")
		issueSession(c, http.StatusCreated, user, opts)
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(creds *service.Credentials, opts utils.TokenOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		user, err := creds.Login(c.Request.Context(), req.Username, req.Password)
		metrics.AuthAttempt("login", outcome(err))
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				logrus.WithField("username", req.Username).Warn("Failed login")
			}
			respondError(c, err)
			return
		}
		issueSession(c, http.StatusOK, user, opts)
	}
}
