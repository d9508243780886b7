package service

import (
	"context"
	"strings"
	"time"

	"game_api/internal/domain"

	"gorm.io/gorm"
)

// CharacterQuery filters a character listing.
type CharacterQuery struct {
	PlayerID       *uint
	CharacterClass string
	Page           Page
}

// CharacterPatch carries the fields of a partial character update; nil means unchanged.
type CharacterPatch struct {
	Name         *string
	Level        *int
	Experience   *int
	Strength     *int
	Intelligence *int
	Dexterity    *int
	Vitality     *int
	Health       *int
	IsActive     *bool
}

func (p CharacterPatch) apply(c *domain.Character) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Level != nil {
		c.Level = *p.Level
	}
	if p.Experience != nil {
		c.Experience = *p.Experience
	}
	if p.Strength != nil {
		c.Strength = *p.Strength
	}
	if p.Intelligence != nil {
		c.Intelligence = *p.Intelligence
	}
	if p.Dexterity != nil {
		c.Dexterity = *p.Dexterity
	}
	if p.Vitality != nil {
		c.Vitality = *p.Vitality
	}
	if p.Health != nil {
		c.Health = *p.Health
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
}

// CharacterService manages the characters of players.
type CharacterService struct {
	res *resource[domain.Character]
}

func NewCharacterService(db *gorm.DB, auth *Authority) *CharacterService {
	return &CharacterService{res: &resource[domain.Character]{
		db:           db,
		auth:         auth,
		name:         "Character",
		owner:        func(c *domain.Character) *uint { return &c.PlayerID },
		playerColumn: "player_id",
		mine: func(tx *gorm.DB, userID uint) *gorm.DB {
			return tx.Where("player_id IN (?)", auth.ownedPlayerIDs(tx, userID))
		},
		order: []string{"created_at DESC", "id DESC"},
	}}
}

// List returns characters visible to the caller. The class filter is a
// case-insensitive exact match.
func (s *CharacterService) List(ctx context.Context, caller Caller, q CharacterQuery) (*Result[domain.Character], error) {
	var scopes []Scope
	if class := strings.TrimSpace(q.CharacterClass); class != "" {
		scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("LOWER(character_class) = ?", strings.ToLower(class))
		})
	}
	return s.res.list(ctx, caller, ListQuery{PlayerID: q.PlayerID, Page: q.Page, Scopes: scopes})
}

func (s *CharacterService) Get(ctx context.Context, caller Caller, id uint) (*domain.Character, error) {
	return s.res.get(ctx, caller, id)
}

// Create adds a level 1 character with baseline stats to playerID.
func (s *CharacterService) Create(ctx context.Context, caller Caller, playerID uint, name, class string) (*domain.Character, error) {
	character := domain.NewCharacter(playerID, name, class)
	character.CreatedAt = time.Now().UTC()
	if err := s.res.create(ctx, caller, &character); err != nil {
		return nil, err
	}
	return &character, nil
}

func (s *CharacterService) Update(ctx context.Context, caller Caller, id uint, patch CharacterPatch) (*domain.Character, error) {
	return s.res.update(ctx, caller, id, patch.apply)
}

func (s *CharacterService) Delete(ctx context.Context, caller Caller, id uint) (*domain.Character, error) {
	return s.res.remove(ctx, caller, id)
}
