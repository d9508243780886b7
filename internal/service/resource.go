package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Scope narrows a list query.
type Scope func(*gorm.DB) *gorm.DB

// ListQuery selects a page of rows, optionally restricted to one player.
type ListQuery struct {
	PlayerID *uint
	Page     Page
	Scopes   []Scope
}

// Result is one page of rows plus the unpaginated match count.
type Result[T any] struct {
	Rows  []T
	Total int64
	Page  Page
}

// resource holds the ownership-checked CRUD shared by players, characters, items
// and scores. Each concrete service supplies how a row resolves to its owning
// player and how a listing is narrowed to the caller's own rows.
type resource[T any] struct {
	db   *gorm.DB
	auth *Authority
	name string

	// owner returns the owning player id of a row, nil when unowned.
	owner func(*T) *uint
	// playerColumn is the column compared against ListQuery.PlayerID.
	playerColumn string
	// mine restricts a listing to rows owned by userID.
	mine func(tx *gorm.DB, userID uint) *gorm.DB
	// seed fills defaults on rows about to be created.
	seed func(*T)
	// order is applied in sequence to listings.
	order []string
	// onDelete runs inside the delete transaction before the row is removed.
	onDelete func(tx *gorm.DB, row *T) error
}

func (r *resource[T]) list(ctx context.Context, caller Caller, q ListQuery) (*Result[T], error) {
	tx := r.db.WithContext(ctx).Model(new(T))
	switch {
	case q.PlayerID != nil:
		if err := r.auth.Authorize(ctx, caller, *q.PlayerID); err != nil {
			return nil, err
		}
		tx = tx.Where(r.playerColumn+" = ?", *q.PlayerID)
	case !caller.IsAdmin():
		tx = r.mine(tx, caller.UserID)
	}
	for _, scope := range q.Scopes {
		tx = scope(tx)
	}
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count %ss: %w", r.name, err)
	}
	rows := make([]T, 0, q.Page.Size)
	find := tx
	for _, o := range r.order {
		find = find.Order(o)
	}
	if err := find.Offset(q.Page.Offset()).Limit(q.Page.Size).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %ss: %w", r.name, err)
	}
	return &Result[T]{Rows: rows, Total: total, Page: q.Page}, nil
}

func (r *resource[T]) find(ctx context.Context, db *gorm.DB, id uint) (*T, error) {
	var row T
	err := db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "%s not found", r.name)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s %d: %w", r.name, id, err)
	}
	return &row, nil
}

func (r *resource[T]) get(ctx context.Context, caller Caller, id uint) (*T, error) {
	row, err := r.find(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	if err := r.auth.AuthorizeOptional(ctx, caller, r.owner(row)); err != nil {
		return nil, err
	}
	return row, nil
}

// create authorizes against the target player named in the row before inserting it.
func (r *resource[T]) create(ctx context.Context, caller Caller, row *T) error {
	if r.seed != nil {
		r.seed(row)
	}
	target := r.owner(row)
	if err := r.auth.AuthorizeOptional(ctx, caller, target); err != nil {
		return err
	}
	if target != nil && caller.IsAdmin() {
		if err := r.requirePlayer(ctx, *target); err != nil {
			return err
		}
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("create %s: %w", r.name, err)
	}
	return nil
}

// requirePlayer reports NotFound for a missing target player. Non-admin callers
// never reach it: Authorize already refused them.
func (r *resource[T]) requirePlayer(ctx context.Context, playerID uint) error {
	var count int64
	if err := r.db.WithContext(ctx).Table("players").Where("id = ?", playerID).Count(&count).Error; err != nil {
		return fmt.Errorf("check player %d: %w", playerID, err)
	}
	if count == 0 {
		return newError(ErrNotFound, "Player not found")
	}
	return nil
}

// update loads the row, authorizes, applies the patch and saves every column.
func (r *resource[T]) update(ctx context.Context, caller Caller, id uint, apply func(*T)) (*T, error) {
	row, err := r.get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	apply(row)
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, fmt.Errorf("update %s %d: %w", r.name, id, err)
	}
	return row, nil
}

func (r *resource[T]) remove(ctx context.Context, caller Caller, id uint) (*T, error) {
	row, err := r.get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.onDelete != nil {
			if err := r.onDelete(tx, row); err != nil {
				return err
			}
		}
		return tx.Delete(row).Error
	})
	if err != nil {
		return nil, fmt.Errorf("delete %s %d: %w", r.name, id, err)
	}
	return row, nil
}
