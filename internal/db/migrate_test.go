package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestWithTableOptionsMySQLUsesBinaryCollation(t *testing.T) {
	// No server is contacted: version lookup and ping are both skipped.
	gdb, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "game:secret@tcp(127.0.0.1:3306)/game_api?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)

	opts, ok := withTableOptions(gdb).Get("gorm:table_options")
	require.True(t, ok)
	assert.Equal(t, MySQLTableOptions, opts)
	assert.Contains(t, opts, "COLLATE=utf8mb4_bin")

	_, ok = gdb.Get("gorm:table_options")
	assert.False(t, ok, "the base handle is left untouched")
}

func TestWithTableOptionsSkipsOtherDrivers(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	_, ok := withTableOptions(gdb).Get("gorm:table_options")
	assert.False(t, ok)
}
