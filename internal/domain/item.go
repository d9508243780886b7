package domain

import "time" // Timestamps

// Item Model
type Item struct {
	ID           uint      `gorm:"primaryKey" json:"id"`             // Primary key
	Name         string    `gorm:"size:50;not null" json:"name"`     // Item name
	Description  string    `gorm:"size:200" json:"description"`      // Free text
	ItemType     string    `gorm:"size:30;not null" json:"itemType"` // Weapon, Armor, Consumable, ...
	AttackBonus  int       `gorm:"not null" json:"attackBonus"`      // 0-1000
	DefenseBonus int       `gorm:"not null" json:"defenseBonus"`     // 0-1000
	Value        int       `gorm:"not null" json:"value"`            // Gold value
	Rarity       int       `gorm:"not null;index" json:"rarity"`     // 1-10, 10 is legendary
	IsEquipped   bool      `gorm:"not null" json:"isEquipped"`       // Equipped flag
	Quantity     int       `gorm:"not null" json:"quantity"`         // 1-999
	AcquiredAt   time.Time `gorm:"not null" json:"acquiredAt"`       // Acquisition time
	PlayerID     *uint     `gorm:"index" json:"playerId"`            // Nullable foreign key to Player
}

// IsOwned reports whether the item belongs to a player
func (i Item) IsOwned() bool {
	return i.PlayerID != nil
}
