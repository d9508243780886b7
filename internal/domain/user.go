package domain

import "time" // Timestamps

// Roles a user can hold
const (
	RolePlayer = "Player" // Default role, owns players
	RoleAdmin  = "Admin"  // Full access to every player's resources
)

// User Model
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`                                   // Primary key
	Username     string     `gorm:"size:50;uniqueIndex;not null" json:"username"`           // Unique username
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`             // Unique email
	PasswordHash string     `gorm:"not null" json:"-"`                                      // Hashed password, never serialized
	Role         string     `gorm:"size:20;not null" json:"role"`                           // Role: Player or Admin
	CreatedAt    time.Time  `json:"createdAt"`                                              // Registration time
	LastLogin    *time.Time `json:"lastLogin"`                                              // Last successful login
	Players      []Player   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // Owned players
}

// IsAdmin reports whether the user holds the Admin role
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
