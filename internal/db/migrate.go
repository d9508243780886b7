package db

import (
	"fmt"                      // Error wrapping
	"game_api/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Models lists every table managed by the API, parents first
var Models = []any{
	&domain.User{},
	&domain.Player{},
	&domain.Character{},
	&domain.Item{},
	&domain.Score{},
}

// MySQLTableOptions gives MySQL tables a binary collation so that usernames,
// emails and game modes compare case-sensitively as on the other drivers
const MySQLTableOptions = "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin"

// withTableOptions adds the driver specific CREATE TABLE options
func withTableOptions(gdb *gorm.DB) *gorm.DB {
	if gdb.Dialector.Name() == "mysql" {
		return gdb.Set("gorm:table_options", MySQLTableOptions)
	}
	return gdb
}

// Migrate performs automatic migration for the database schema
func Migrate(gdb *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := withTableOptions(gdb).AutoMigrate(Models...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
