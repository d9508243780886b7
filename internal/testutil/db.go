// Package testutil provides the database fixtures shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"game_api/internal/db"
	"game_api/internal/domain"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plain password of every user created by CreateUser.
const Password = "secret123"

// SetupTestDB creates an isolated, migrated in-memory SQLite database for t.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open test database")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb), "migrate test database")
	return gdb
}

// CreateUser inserts a user with the given role and Password.
func CreateUser(t *testing.T, gdb *gorm.DB, username, role string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, gdb.Create(user).Error)
	return user
}

// CreatePlayer inserts a player with the starting stats owned by userID.
func CreatePlayer(t *testing.T, gdb *gorm.DB, userID uint, name string) *domain.Player {
	t.Helper()
	player := domain.NewPlayer(userID, name)
	player.CreatedAt = time.Now().UTC()
	require.NoError(t, gdb.Create(&player).Error)
	return &player
}

// CreateScore inserts a score row as-is, bypassing high-score bookkeeping.
func CreateScore(t *testing.T, gdb *gorm.DB, score domain.Score) *domain.Score {
	t.Helper()
	if score.AchievedAt.IsZero() {
		score.AchievedAt = time.Now().UTC()
	}
	if score.DifficultyLevel == 0 {
		score.DifficultyLevel = 1
	}
	require.NoError(t, gdb.Create(&score).Error)
	return &score
}
