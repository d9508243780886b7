package db

import (
	"context"                  // Request-scoped DB access
	"fmt"                      // Error wrapping
	"game_api/internal/domain" // Importing domain models
	"time"                     // Timestamps

	"github.com/sirupsen/logrus" // Structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// SeedPassword is the password of every seeded account
const SeedPassword = "password123"

func uintPtr(v uint) *uint { return &v }

// Seed loads demo users, players, characters, items and scores into an empty database.
// It is a no-op when any user already exists.
func Seed(ctx context.Context, gdb *gorm.DB) error {
	var count int64
	if err := gdb.WithContext(ctx).Model(&domain.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		logrus.WithField("users", count).Info("Seed skipped, database not empty")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	now := time.Now().UTC()
	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := []domain.User{
			{Username: "admin", Email: "admin@gameapi.com", PasswordHash: string(hash), Role: domain.RoleAdmin, CreatedAt: now},
			{Username: "player1", Email: "player1@gameapi.com", PasswordHash: string(hash), Role: domain.RolePlayer, CreatedAt: now},
			{Username: "player2", Email: "player2@gameapi.com", PasswordHash: string(hash), Role: domain.RolePlayer, CreatedAt: now},
		}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		players := []domain.Player{
			{Name: "DragonSlayer", Level: 15, Experience: 4500, Gold: 2500, Health: 150, MaxHealth: 150, Mana: 100, MaxMana: 100, UserID: users[1].ID, CreatedAt: now},
			{Name: "ShadowHunter", Level: 10, Experience: 2000, Gold: 1200, Health: 120, MaxHealth: 120, Mana: 80, MaxMana: 80, UserID: users[2].ID, CreatedAt: now},
		}
		if err := tx.Create(&players).Error; err != nil {
			return fmt.Errorf("seed players: %w", err)
		}
		slayer, hunter := players[0].ID, players[1].ID
		characters := []domain.Character{
			{Name: "Thorin", CharacterClass: "Warrior", Level: 15, Experience: 4500, Strength: 25, Intelligence: 10, Dexterity: 15, Vitality: 30, Health: 300, MaxHealth: 300, IsActive: true, PlayerID: slayer, CreatedAt: now},
			{Name: "Gandalf", CharacterClass: "Mage", Level: 12, Experience: 3000, Strength: 8, Intelligence: 35, Dexterity: 12, Vitality: 15, Health: 180, MaxHealth: 180, IsActive: true, PlayerID: slayer, CreatedAt: now},
			{Name: "Legolas", CharacterClass: "Ranger", Level: 10, Experience: 2000, Strength: 15, Intelligence: 12, Dexterity: 30, Vitality: 20, Health: 220, MaxHealth: 220, IsActive: true, PlayerID: hunter, CreatedAt: now},
		}
		if err := tx.Create(&characters).Error; err != nil {
			return fmt.Errorf("seed characters: %w", err)
		}
		items := []domain.Item{
			{Name: "Excalibur", Description: "Legendary sword of immense power", ItemType: "Weapon", AttackBonus: 50, DefenseBonus: 10, Value: 5000, Rarity: 10, IsEquipped: true, Quantity: 1, PlayerID: uintPtr(slayer), AcquiredAt: now},
			{Name: "Iron Armor", Description: "Sturdy armor for protection", ItemType: "Armor", DefenseBonus: 30, Value: 1500, Rarity: 5, IsEquipped: true, Quantity: 1, PlayerID: uintPtr(slayer), AcquiredAt: now},
			{Name: "Health Potion", Description: "Restores 50 health points", ItemType: "Consumable", Value: 50, Rarity: 2, Quantity: 10, PlayerID: uintPtr(slayer), AcquiredAt: now},
			{Name: "Elven Bow", Description: "Swift and accurate bow", ItemType: "Weapon", AttackBonus: 35, Value: 2000, Rarity: 7, IsEquipped: true, Quantity: 1, PlayerID: uintPtr(hunter), AcquiredAt: now},
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("seed items: %w", err)
		}
		scores := []domain.Score{
			{GameMode: "Arena", Points: 15000, Kills: 50, Deaths: 5, TimePlayed: 3600, DifficultyLevel: 5, IsHighScore: true, PlayerID: slayer, AchievedAt: now},
			{GameMode: "Dungeon", Points: 8000, Kills: 30, Deaths: 3, TimePlayed: 2400, DifficultyLevel: 3, IsHighScore: true, PlayerID: slayer, AchievedAt: now},
			{GameMode: "Arena", Points: 12000, Kills: 40, Deaths: 8, TimePlayed: 3000, DifficultyLevel: 4, IsHighScore: true, PlayerID: hunter, AchievedAt: now},
		}
		if err := tx.Create(&scores).Error; err != nil {
			return fmt.Errorf("seed scores: %w", err)
		}
		logrus.WithFields(logrus.Fields{
			"users":      len(users),
			"players":    len(players),
			"characters": len(characters),
			"items":      len(items),
			"scores":     len(scores),
		}).Info("Seed data loaded")
		return nil
	})
}
