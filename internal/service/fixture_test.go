package service

import (
	"testing"

	"game_api/internal/domain"
	"game_api/internal/testutil"

	"gorm.io/gorm"
)

// fixture holds a migrated database with two players' owners and an admin.
type fixture struct {
	db    *gorm.DB
	auth  *Authority
	alice Caller
	bob   Caller
	admin Caller
}

func callerOf(u *domain.User) Caller {
	return Caller{UserID: u.ID, Username: u.Username, Role: u.Role}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := testutil.SetupTestDB(t)
	return &fixture{
		db:    gdb,
		auth:  NewAuthority(gdb, false),
		alice: callerOf(testutil.CreateUser(t, gdb, "alice", domain.RolePlayer)),
		bob:   callerOf(testutil.CreateUser(t, gdb, "bob", domain.RolePlayer)),
		admin: callerOf(testutil.CreateUser(t, gdb, "root", domain.RoleAdmin)),
	}
}
