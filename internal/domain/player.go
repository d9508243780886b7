package domain

import "time" // Timestamps

// Player Model
type Player struct {
	ID         uint        `gorm:"primaryKey" json:"id"`                                    // Primary key
	Name       string      `gorm:"size:50;not null" json:"name"`                            // Display name
	Level      int         `gorm:"not null" json:"level"`                                   // Level 1-100
	Experience int         `gorm:"not null" json:"experience"`                              // Experience points
	Gold       int         `gorm:"not null" json:"gold"`                                    // Gold balance
	Health     int         `gorm:"not null" json:"health"`                                  // Current health
	MaxHealth  int         `gorm:"not null" json:"maxHealth"`                               // Maximum health
	Mana       int         `gorm:"not null" json:"mana"`                                    // Current mana
	MaxMana    int         `gorm:"not null" json:"maxMana"`                                 // Maximum mana
	CreatedAt  time.Time   `json:"createdAt"`                                               // Creation time
	LastPlayed *time.Time  `json:"lastPlayed"`                                              // Stamped on every update
	UserID     uint        `gorm:"index;not null" json:"userId"`                            // Foreign key to owning User
	Characters []Character `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`  // Deleted with the player
	Items      []Item      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"` // Orphaned with the player
	Scores     []Score     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`  // Deleted with the player
}

// NewPlayer returns a player with the fixed starting stats
func NewPlayer(userID uint, name string) Player {
	return Player{
		Name:       name,
		Level:      1,
		Experience: 0,
		Gold:       100,
		Health:     100,
		MaxHealth:  100,
		Mana:       50,
		MaxMana:    50,
		UserID:     userID,
	}
}
