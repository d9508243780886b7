package service

import (
	"context"
	"fmt"
	"time"

	"game_api/internal/domain"

	"gorm.io/gorm"
)

// PlayerPatch carries the fields of a partial player update; nil means unchanged.
type PlayerPatch struct {
	Name       *string
	Level      *int
	Experience *int
	Gold       *int
	Health     *int
	Mana       *int
}

func (p PlayerPatch) apply(player *domain.Player) {
	if p.Name != nil {
		player.Name = *p.Name
	}
	if p.Level != nil {
		player.Level = *p.Level
	}
	if p.Experience != nil {
		player.Experience = *p.Experience
	}
	if p.Gold != nil {
		player.Gold = *p.Gold
	}
	if p.Health != nil {
		player.Health = *p.Health
	}
	if p.Mana != nil {
		player.Mana = *p.Mana
	}
}

// PlayerService manages the players of a user.
type PlayerService struct {
	res *resource[domain.Player]
}

// NewPlayerService returns a PlayerService. Deleting a player removes its characters
// and scores and detaches its items.
func NewPlayerService(db *gorm.DB, auth *Authority) *PlayerService {
	return &PlayerService{res: &resource[domain.Player]{
		db:           db,
		auth:         auth,
		name:         "Player",
		owner:        func(p *domain.Player) *uint { return &p.ID },
		playerColumn: "id",
		mine: func(tx *gorm.DB, userID uint) *gorm.DB {
			return tx.Where("user_id = ?", userID)
		},
		order: []string{"created_at DESC", "id DESC"},
		onDelete: func(tx *gorm.DB, p *domain.Player) error {
			if err := tx.Where("player_id = ?", p.ID).Delete(&domain.Character{}).Error; err != nil {
				return err
			}
			if err := tx.Where("player_id = ?", p.ID).Delete(&domain.Score{}).Error; err != nil {
				return err
			}
			return tx.Model(&domain.Item{}).Where("player_id = ?", p.ID).Update("player_id", nil).Error
		},
	}}
}

// List returns the caller's players, or every player for admins.
func (s *PlayerService) List(ctx context.Context, caller Caller, page Page) (*Result[domain.Player], error) {
	return s.res.list(ctx, caller, ListQuery{Page: page})
}

// Get returns one player.
func (s *PlayerService) Get(ctx context.Context, caller Caller, id uint) (*domain.Player, error) {
	return s.res.get(ctx, caller, id)
}

// Create makes a new player owned by the caller with the starting stats.
func (s *PlayerService) Create(ctx context.Context, caller Caller, name string) (*domain.Player, error) {
	player := domain.NewPlayer(caller.UserID, name)
	player.CreatedAt = time.Now().UTC()
	if err := s.res.db.WithContext(ctx).Create(&player).Error; err != nil {
		return nil, fmt.Errorf("create Player: %w", err)
	}
	return &player, nil
}

// Update applies patch and stamps LastPlayed.
func (s *PlayerService) Update(ctx context.Context, caller Caller, id uint, patch PlayerPatch) (*domain.Player, error) {
	return s.res.update(ctx, caller, id, func(p *domain.Player) {
		patch.apply(p)
		now := time.Now().UTC()
		p.LastPlayed = &now
	})
}

// Delete removes the player with its characters and scores; its items become unowned.
func (s *PlayerService) Delete(ctx context.Context, caller Caller, id uint) (*domain.Player, error) {
	return s.res.remove(ctx, caller, id)
}
