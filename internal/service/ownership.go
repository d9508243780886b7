package service

import (
	"context"
	"fmt"

	"game_api/internal/domain"

	"gorm.io/gorm"
)

// Authority decides whether a caller may act on a player's resources.
type Authority struct {
	db           *gorm.DB
	shareUnowned bool
}

// NewAuthority returns an Authority. When shareUnowned is set, items without an
// owning player are readable and writable by every authenticated caller; otherwise
// only admins may touch them.
func NewAuthority(db *gorm.DB, shareUnowned bool) *Authority {
	return &Authority{db: db, shareUnowned: shareUnowned}
}

// Authorize allows admins unconditionally and everyone else only when the player
// exists and belongs to them. Missing players are reported as Forbidden.
func (a *Authority) Authorize(ctx context.Context, caller Caller, playerID uint) error {
	if caller.IsAdmin() {
		return nil
	}
	var owners []uint
	err := a.db.WithContext(ctx).
		Model(&domain.Player{}).
		Where("id = ?", playerID).
		Limit(1).
		Pluck("user_id", &owners).Error
	if err != nil {
		return fmt.Errorf("load owner of player %d: %w", playerID, err)
	}
	if len(owners) == 0 || owners[0] != caller.UserID {
		return forbidden()
	}
	return nil
}

// AuthorizeOptional is Authorize for rows whose owning player may be absent.
func (a *Authority) AuthorizeOptional(ctx context.Context, caller Caller, playerID *uint) error {
	if playerID != nil {
		return a.Authorize(ctx, caller, *playerID)
	}
	if a.shareUnowned || caller.IsAdmin() {
		return nil
	}
	return forbidden()
}

// ownedPlayerIDs is a subquery selecting the ids of the players owned by userID.
func (a *Authority) ownedPlayerIDs(tx *gorm.DB, userID uint) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true}).
		Model(&domain.Player{}).
		Select("id").
		Where("user_id = ?", userID)
}
