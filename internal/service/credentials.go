package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"game_api/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Credentials registers users and verifies their passwords.
type Credentials struct {
	db   *gorm.DB
	cost int
}

// NewCredentials returns a Credentials hashing with the given bcrypt cost.
func NewCredentials(db *gorm.DB, cost int) *Credentials {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{db: db, cost: cost}
}

// Register creates a Player-role user. Username and email must both be unused;
// both comparisons are exact.
func (s *Credentials) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	db := s.db.WithContext(ctx)
	if taken, err := s.exists(db, "username", username); err != nil {
		return nil, err
	} else if taken {
		return nil, newError(ErrConflict, "Username already exists")
	}
	if taken, err := s.exists(db, "email", email); err != nil {
		return nil, err
	} else if taken {
		return nil, newError(ErrConflict, "Email already exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RolePlayer,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent registration.
			return nil, newError(ErrConflict, "Username or email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *Credentials) exists(db *gorm.DB, column, value string) (bool, error) {
	var count int64
	if err := db.Model(&domain.User{}).Where(column+" = ?", value).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check %s: %w", column, err)
	}
	return count > 0, nil
}

// Login verifies the password and stamps LastLogin.
func (s *Credentials) Login(ctx context.Context, username, password string) (*domain.User, error) {
	db := s.db.WithContext(ctx)
	var user domain.User
	err := db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrUnauthenticated, "Invalid username or password")
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, newError(ErrUnauthenticated, "Invalid username or password")
	}
	now := time.Now().UTC()
	if err := db.Model(&user).Update("last_login", now).Error; err != nil {
		return nil, fmt.Errorf("stamp last login: %w", err)
	}
	user.LastLogin = &now
	return &user, nil
}

// ListUsers returns a page of users ordered by id.
func (s *Credentials) ListUsers(ctx context.Context, page Page) (*Result[domain.User], error) {
	tx := s.db.WithContext(ctx).Model(&domain.User{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	users := make([]domain.User, 0, page.Size)
	if err := s.db.WithContext(ctx).Order("id").Offset(page.Offset()).Limit(page.Size).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &Result[domain.User]{Rows: users, Total: total, Page: page}, nil
}
