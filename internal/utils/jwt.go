package utils

import (
	"errors"                   // Error values
	"game_api/internal/domain" // Importing domain models
	"time"                     // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrInvalidToken is returned for tokens that fail parsing or validation
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenOptions configures signing and validation of session tokens
type TokenOptions struct {
	Secret   string        // HMAC secret
	TTL      time.Duration // Token lifetime
	Issuer   string        // Optional iss claim, validated when set
	Audience string        // Optional aud claim, validated when set
}

// JWT Claims
type Claims struct {
	UserID               uint   `json:"user_id"`  // Subject user ID
	Username             string `json:"username"` // Username at issue time
	Email                string `json:"email"`    // Email at issue time
	Role                 string `json:"role"`     // Player or Admin
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateJWT creates a signed session token for user and returns it with its expiry
func GenerateJWT(user domain.User, opts TokenOptions) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(opts.TTL) // Token expiry
	claims := Claims{
		UserID:   user.ID,       // Subject user ID
		Username: user.Username, // Username
		Email:    user.Email,    // Email
		Role:     user.Role,     // Role
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt), // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),       // Issued at current time
			Issuer:    opts.Issuer,                   // Empty issuer is omitted
		},
	}
	if opts.Audience != "" {
		claims.Audience = jwt.ClaimStrings{opts.Audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	signed, err := token.SignedString([]byte(opts.Secret))     // Sign the token with the secret
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr string, opts TokenOptions) (*Claims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), // Reject alg switching
		jwt.WithExpirationRequired(),                                 // Tokens must expire
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(opts.Secret), nil // Return the secret key for validation
	}, parserOpts...)
	// Check for parsing errors
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.UserID != 0 {
		return claims, nil // Return claims if valid
	}
	return nil, ErrInvalidToken
}
