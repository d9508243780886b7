package service

import "game_api/internal/domain"

// Caller is the authenticated identity on whose behalf a service call runs.
type Caller struct {
	UserID   uint
	Username string
	Role     string
}

// IsAdmin reports whether the caller holds the Admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}
