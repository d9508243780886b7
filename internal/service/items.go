package service

import (
	"context"
	"strings"
	"time"

	"game_api/internal/domain"

	"gorm.io/gorm"
)

// ItemQuery filters an item listing.
type ItemQuery struct {
	PlayerID  *uint
	ItemType  string
	MinRarity *int
	Page      Page
}

// ItemInput describes a new item. Zero Rarity and Quantity fall back to 1.
type ItemInput struct {
	Name         string
	Description  string
	ItemType     string
	AttackBonus  int
	DefenseBonus int
	Value        int
	Rarity       int
	Quantity     int
	PlayerID     *uint
}

// ItemPatch carries the fields of a partial item update; nil means unchanged.
type ItemPatch struct {
	Name        *string
	Description *string
	IsEquipped  *bool
	Quantity    *int
}

func (p ItemPatch) apply(i *domain.Item) {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.IsEquipped != nil {
		i.IsEquipped = *p.IsEquipped
	}
	if p.Quantity != nil {
		i.Quantity = *p.Quantity
	}
}

// ItemService manages items, which may exist without an owning player.
type ItemService struct {
	res *resource[domain.Item]
}

func NewItemService(db *gorm.DB, auth *Authority) *ItemService {
	return &ItemService{res: &resource[domain.Item]{
		db:           db,
		auth:         auth,
		name:         "Item",
		owner:        func(i *domain.Item) *uint { return i.PlayerID },
		playerColumn: "player_id",
		mine: func(tx *gorm.DB, userID uint) *gorm.DB {
			return tx.Where("player_id IN (?)", auth.ownedPlayerIDs(tx, userID))
		},
		seed: func(i *domain.Item) {
			if i.Rarity == 0 {
				i.Rarity = 1
			}
			if i.Quantity == 0 {
				i.Quantity = 1
			}
			i.IsEquipped = false
		},
		order: []string{"rarity DESC", "acquired_at DESC", "id DESC"},
	}}
}

// List returns items visible to the caller, filtered by case-insensitive type and
// an inclusive minimum rarity.
func (s *ItemService) List(ctx context.Context, caller Caller, q ItemQuery) (*Result[domain.Item], error) {
	var scopes []Scope
	if itemType := strings.TrimSpace(q.ItemType); itemType != "" {
		scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("LOWER(item_type) = ?", strings.ToLower(itemType))
		})
	}
	if q.MinRarity != nil {
		minRarity := *q.MinRarity
		scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("rarity >= ?", minRarity)
		})
	}
	return s.res.list(ctx, caller, ListQuery{PlayerID: q.PlayerID, Page: q.Page, Scopes: scopes})
}

func (s *ItemService) Get(ctx context.Context, caller Caller, id uint) (*domain.Item, error) {
	return s.res.get(ctx, caller, id)
}

func (s *ItemService) Create(ctx context.Context, caller Caller, in ItemInput) (*domain.Item, error) {
	item := domain.Item{
		Name:         in.Name,
		Description:  in.Description,
		ItemType:     in.ItemType,
		AttackBonus:  in.AttackBonus,
		DefenseBonus: in.DefenseBonus,
		Value:        in.Value,
		Rarity:       in.Rarity,
		Quantity:     in.Quantity,
		PlayerID:     in.PlayerID,
		AcquiredAt:   time.Now().UTC(),
	}
	if err := s.res.create(ctx, caller, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ItemService) Update(ctx context.Context, caller Caller, id uint, patch ItemPatch) (*domain.Item, error) {
	return s.res.update(ctx, caller, id, patch.apply)
}

func (s *ItemService) Delete(ctx context.Context, caller Caller, id uint) (*domain.Item, error) {
	return s.res.remove(ctx, caller, id)
}
