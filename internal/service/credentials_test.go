package service

import (
	"context"
	"testing"

	"game_api/internal/domain"
	"game_api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	creds := NewCredentials(gdb, bcrypt.MinCost)
	ctx := context.Background()

	user, err := creds.Register(ctx, "newbie", "newbie@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, domain.RolePlayer, user.Role)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))
}

func TestRegisterConflicts(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	creds := NewCredentials(gdb, bcrypt.MinCost)
	ctx := context.Background()

	_, err := creds.Register(ctx, "taken", "taken@example.com", "hunter22")
	require.NoError(t, err)

	_, err = creds.Register(ctx, "taken", "other@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrConflict, "duplicate username with a fresh email")

	_, err = creds.Register(ctx, "other", "taken@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrConflict, "duplicate email with a fresh username")

	var count int64
	require.NoError(t, gdb.Model(&domain.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCredentialsAreCaseSensitive(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	creds := NewCredentials(gdb, bcrypt.MinCost)
	ctx := context.Background()

	_, err := creds.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	other, err := creds.Register(ctx, "Alice", "Alice@example.com", "hunter22")
	require.NoError(t, err, "usernames and emails differing only in case are distinct")
	assert.Equal(t, "Alice", other.Username)

	_, err = creds.Login(ctx, "ALICE", "hunter22")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	user, err := creds.Login(ctx, "Alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, other.ID, user.ID)
}

func TestLogin(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	creds := NewCredentials(gdb, bcrypt.MinCost)
	ctx := context.Background()
	testutil.CreateUser(t, gdb, "alice", domain.RolePlayer)

	user, err := creds.Login(ctx, "alice", testutil.Password)
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)

	var stored domain.User
	require.NoError(t, gdb.First(&stored, user.ID).Error)
	assert.NotNil(t, stored.LastLogin)

	_, err = creds.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = creds.Login(ctx, "nobody", testutil.Password)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestListUsers(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	creds := NewCredentials(gdb, bcrypt.MinCost)
	for _, name := range []string{"u1", "u2", "u3"} {
		testutil.CreateUser(t, gdb, name, domain.RolePlayer)
	}

	result, err := creds.ListUsers(context.Background(), NewPage(2, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "u3", result.Rows[0].Username)
}
