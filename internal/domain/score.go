package domain

import "time" // Timestamps

// Score Model
type Score struct {
	ID              uint      `gorm:"primaryKey" json:"id"`                                                     // Primary key
	GameMode        string    `gorm:"size:50;not null;index:idx_scores_player_mode,priority:2" json:"gameMode"` // Arena, Quest, Dungeon, ...
	Points          int       `gorm:"not null;index" json:"points"`                                             // Points scored
	Kills           int       `gorm:"not null" json:"kills"`                                                    // Kills in the session
	Deaths          int       `gorm:"not null" json:"deaths"`                                                   // Deaths in the session
	TimePlayed      float64   `gorm:"not null" json:"timePlayed"`                                               // Seconds
	DifficultyLevel int       `gorm:"not null" json:"difficultyLevel"`                                          // 1-100
	IsHighScore     bool      `gorm:"not null" json:"isHighScore"`                                              // Best score of (player, game mode)
	AchievedAt      time.Time `gorm:"not null" json:"achievedAt"`                                               // Submission time
	PlayerID        uint      `gorm:"not null;index:idx_scores_player_mode,priority:1" json:"playerId"`         // Foreign key to Player
}
