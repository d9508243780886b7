package domain

import "time" // Timestamps

// Character Model
type Character struct {
	ID             uint      `gorm:"primaryKey" json:"id"`                   // Primary key
	Name           string    `gorm:"size:50;not null" json:"name"`           // Character name
	CharacterClass string    `gorm:"size:30;not null" json:"characterClass"` // Warrior, Mage, Ranger, ...
	Level          int       `gorm:"not null" json:"level"`                  // Level 1-100
	Experience     int       `gorm:"not null" json:"experience"`             // Experience points
	Strength       int       `gorm:"not null" json:"strength"`               // Stat 1-1000
	Intelligence   int       `gorm:"not null" json:"intelligence"`           // Stat 1-1000
	Dexterity      int       `gorm:"not null" json:"dexterity"`              // Stat 1-1000
	Vitality       int       `gorm:"not null" json:"vitality"`               // Stat 1-1000
	Health         int       `gorm:"not null" json:"health"`                 // Current health
	MaxHealth      int       `gorm:"not null" json:"maxHealth"`              // Maximum health
	IsActive       bool      `gorm:"not null" json:"isActive"`               // Active flag
	CreatedAt      time.Time `json:"createdAt"`                              // Creation time
	PlayerID       uint      `gorm:"index;not null" json:"playerId"`         // Foreign key to owning Player
}

// NewCharacter returns a level 1 character with baseline stats
func NewCharacter(playerID uint, name, class string) Character {
	return Character{
		Name:           name,
		CharacterClass: class,
		Level:          1,
		Strength:       10,
		Intelligence:   10,
		Dexterity:      10,
		Vitality:       10,
		Health:         100,
		MaxHealth:      100,
		IsActive:       true,
		PlayerID:       playerID,
	}
}
