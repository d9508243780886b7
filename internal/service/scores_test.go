package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"game_api/internal/domain"
	"game_api/internal/testutil"
	"game_api/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newScoreService(f *fixture) *ScoreService {
	return NewScoreService(f.db, f.auth, utils.NewLocalLocker())
}

// recordingLocker wraps a Locker and runs hooks right after a lock is taken
// and right before it is released.
type recordingLocker struct {
	inner     Locker
	mu        sync.Mutex
	keys      []string
	onLock    func(key string)
	onRelease func(key string)
}

func (l *recordingLocker) Lock(ctx context.Context, key string) (func(), error) {
	unlock, err := l.inner.Lock(ctx, key)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.keys = append(l.keys, key)
	l.mu.Unlock()
	if l.onLock != nil {
		l.onLock(key)
	}
	return func() {
		if l.onRelease != nil {
			l.onRelease(key)
		}
		unlock()
	}, nil
}

type failingLocker struct{ err error }

func (l failingLocker) Lock(context.Context, string) (func(), error) {
	return nil, l.err
}

func countScores(t *testing.T, gdb *gorm.DB, playerID uint, mode string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(&domain.Score{}).Where("player_id = ? AND game_mode = ?", playerID, mode).Count(&n).Error)
	return n
}

// highScores returns the flagged rows of (playerID, mode).
func highScores(t *testing.T, gdb *gorm.DB, playerID uint, mode string) []domain.Score {
	t.Helper()
	var rows []domain.Score
	require.NoError(t, gdb.Where("player_id = ? AND game_mode = ? AND is_high_score = ?", playerID, mode, true).Find(&rows).Error)
	return rows
}

func TestSubmitFirstScoreIsHigh(t *testing.T) {
	f := newFixture(t)
	scores := newScoreService(f)
	p := testutil.CreatePlayer(t, f.db, f.alice.UserID, "Hero")

	s, err := scores.Submit(context.Background(), f.alice, ScoreInput{PlayerID: p.ID, GameMode: "Arena", Points: 0})
	require.NoError(t, err)
	assert.True(t, s.IsHighScore)
	assert.Equal(t, 1, s.DifficultyLevel, "difficulty defaults to 1")
}

func TestSubmitMaintainsSingleHighScore(t *testing.T) {
	f := newFixture(t)
	scores := newScoreService(f)
	ctx := context.Background()
	p := testutil.CreatePlayer(t, f.db, f.alice.UserID, "Hero")

	first, err := scores.Submit(ctx, f.alice, ScoreInput{PlayerID: p.ID, GameMode: "Arena", Points: 100})
	require.NoError(t, err)

	tie, err := scores.Submit(ctx, f.alice, ScoreInput{PlayerID: p.ID, GameMode: "Arena", Points: 100})
	require.NoError(t, err)
	assert.False(t, tie.IsHighScore, "an equal score leaves the holder flagged")

	lower, err := scores.Submit(ctx, f.alice, ScoreInput{PlayerID: p.ID, GameMode: "Arena", Points: 50})
	require.NoError(t, err)
	assert.False(t, lower.IsHighScore)

	high := highScores(t, f.db, p.ID, "Arena")
	require.Len(t, high, 1)
	assert.Equal(t, first.ID, high[0].ID)

	better, err := scores.Submit(ctx, f.alice, ScoreInput{PlayerID: p.ID, GameMode: "Arena", Points: 101})
	require.NoError(t, err)
	assert.True(t, better.IsHighScore)

	high = highScores(t, f.db, p.ID, "Arena")
	require.Len(t, high, 1)
	assert.Equal(t, better.ID, high[0].ID)

	// Other modes keep their own holder.
	quest, err := scores.Submit(ctx, f.alice, ScoreInput{PlayerID: p.ID, GameMode: "Quest", Points: 1})
	require.NoError(t, err)
	assert.True(t, quest.IsHighScore)
	assert.Len(t, highScores(t, f.db, p.ID, "Arena"), 1)
}

func TestSubmitWritesInsideLock(t *testing.T) {
	f := newFixture(t)
	p := testutil.CreatePlayer(t, f.db, f.alice.UserID, "Hero")
	locker := &recordingLocker{inner: utils.NewLocalLocker()}
	locker.onLock = func(string) {
		assert.Zero(t, countScores(t, f.db, p.ID, "Arena"), "nothing is written before the lock is held")
	}
	locker.onRelease = func(string) {
		assert.Equal(t, int64(1), countScores(t, f.db, p.ID, "Arena"), "the score is committed before the lock is released")
		assert.Len(t, highScores(t, f.db, p.ID, "Arena"), 1)
	}
	scores := NewScoreService(f.db, f.auth, locker)

	_, err := scores.Submit(context.Background(), f.alice, ScoreInput{PlayerID: p.ID, GameMode: "Arena", Points: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{fmt.Sprintf("lock:score:%d:Arena", p.ID)}, locker.keys)
}

func TestDeletePromotesInsideLock(t *testing.T) {
	f := newFixture(t)
	p := testutil.CreatePlayer(t, f.db, f.alice.UserID, "Hero")
	holder := testutil.CreateScore(t, f.db, domain.Score{PlayerID: p.ID, GameMode: "Arena", Points: 300, IsHighScore: true, AchievedAt: time.Now().UTC()})
	next := testutil.CreateScore(t, f.db, domain.Score{PlayerID: p.ID, GameMode: "Arena", Points: 200, AchievedAt: time.Now().UTC()})

	locker := &recordingLocker{inner: utils.NewLocalLocker()}
	locker.onLock = func(string) {
		assert.Equal(t, int64(2), countScores(t, f.db, p.ID, "Arena"), "the holder still exists when the lock is taken")
	}
	locker.onRelease = func(string) {
		assert.Equal(t, int64(1), countScores(t, f.db, p.ID, "Arena"))
		high := highScores(t, f.db, p.ID, "Arena")
		if assert.Len(t, high, 1) {
			assert.Equal(t, next.ID, high[0].ID, "promotion is committed before the lock is released")
		}
	}
	scores := NewScoreService(f.db, f.auth, locker)

	_, err := scores.Delete(context.Background(), f.alice, holder.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{fmt.Sprintf("lock:score:%d:Arena", p.ID)}, locker.keys)
}

func TestSubmitWaitsForHeldLock(t *testing.T) {
	f := newFixture(t)
	p := testutil.CreatePlayer(t, f.db, f.alice.UserID, "Hero")
	locker := utils.NewLocalLocker()
	scores := NewScoreService(f.db, f.auth, locker)

	release, err := locker.Lock(context.Background(), scoreLockKey(p.ID, "Arena"))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := scores.Submit(context.Background(), f.alice, ScoreInput{PlayerID: p.ID, GameMode: "Arena", Points: 10})
		done <- err
	}()

	select {
	case err := <-done:
		t.Fatalf("submit finished while the pair was locked: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
	assert.Zero(t, countScores(t, f.db, p.ID, "Arena"))

	release()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("submit did not resume after the lock was released")
	}
	assert.Equal(t, int64(1), countScores(t, f.db, p.ID, "Arena"))
}

func TestSubmitLockFailureWritesNothing(t *testing.T) {
	f := newFixture(t)
	p := testutil.CreatePlayer(t, f.db, f.alice.UserID, "Hero")
	lockErr := errors.New("redis unavailable")
	scores := NewScoreService(f.db, f.auth, failingLocker{err: lockErr})

	_, err := scores.Submit(context.Background(), f.alice, ScoreInput{PlayerID: p.ID, GameMode: "Arena", Points: 10})
	assert.ErrorIs(t, err, lockErr)
	assert.Zero(t, countScores(t, f.db, p.ID, "Arena"))
}

func TestGameModesAreCaseSensitive(t *testing.T) {
	f := newFixture(t)
	scores := newScoreService(f)
	ctx := context.Background()
	p := testutil.CreatePlayer(t, f.db, f.alice.UserID, "Hero")

	upper, err := scores.Submit(ctx, f.alice, ScoreInput{PlayerID: p.ID, GameMode: "Arena", Points: 100})
	require.NoError(t, err)
	lower, err := scores.Submit(ctx, f.alice, ScoreInput{PlayerID: p.ID, GameMode: "arena", Points: 50})
	require.NoError(t, err)

	assert.True(t, upper.IsHighScore)
	assert.True(t, lower.IsHighScore, "arena is its own pair")
	assert.Len(t, highScores(t, f.db, p.ID, "Arena"), 1)
	assert.Len(t, highScores(t, f.db, p.ID, "arena"), 1)
	assert.NotEqual(t, scoreLockKey(p.ID, "Arena"), scoreLockKey(p.ID, "arena"))
}

func TestSubmitConcurrentKeepsOneHighScore(t *testing.T) {
	f := newFixture(t)
	scores := newScoreService(f)
	p := testutil.CreatePlayer(t, f.db, f.alice.UserID, "Hero")

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(points int) {
			defer wg.Done()
			_, err := scores.Submit(context.Background(), f.alice, ScoreInput{PlayerID: p.ID, GameMode: "Arena", Points: points * 10})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	high := highScores(t, f.db, p.ID, "Arena")
	require.Len(t, high, 1)
	assert.Equal(t, n*10, high[0].Points)
}

func TestSubmitAuthorization(t *testing.T) {
	f := newFixture(t)
	scores := newScoreService(f)
	ctx := context.Background()
	p := testutil.CreatePlayer(t, f.db, f.alice.UserID, "Hero")

	_, err := scores.Submit(ctx, f.bob, ScoreInput{PlayerID: p.ID, GameMode: "Arena", Points: 10})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = scores.Submit(ctx, f.admin, ScoreInput{PlayerID: 9999, GameMode: "Arena", Points: 10})
	assert.ErrorIs(t, err, ErrNotFound)

	s, err := scores.Submit(ctx, f.admin, ScoreInput{PlayerID: p.ID, GameMode: "Arena", Points: 10})
	require.NoError(t, err)

	_, err = scores.Get(ctx, f.bob, s.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = scores.Delete(ctx, f.bob, s.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteHighScorePromotesBestRemaining(t *testing.T) {
	f := newFixture(t)
	scores := newScoreService(f)
	ctx := context.Background()
	p := testutil.CreatePlayer(t, f.db, f.alice.UserID, "Hero")

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	testutil.CreateScore(t, f.db, domain.Score{PlayerID: p.ID, GameMode: "Arena", Points: 300, IsHighScore: true, AchievedAt: base})
	late := testutil.CreateScore(t, f.db, domain.Score{PlayerID: p.ID, GameMode: "Arena", Points: 200, AchievedAt: base.Add(2 * time.Hour)})
	early := testutil.CreateScore(t, f.db, domain.Score{PlayerID: p.ID, GameMode: "Arena", Points: 200, AchievedAt: base.Add(time.Hour)})

	high := highScores(t, f.db, p.ID, "Arena")
	require.Len(t, high, 1)

	_, err := scores.Delete(ctx, f.alice, high[0].ID)
	require.NoError(t, err)

	high = highScores(t, f.db, p.ID, "Arena")
	require.Len(t, high, 1)
	assert.Equal(t, early.ID, high[0].ID, "ties go to the earlier score")

	// Removing a non-holder leaves the flag alone.
	_, err = scores.Delete(ctx, f.alice, late.ID)
	require.NoError(t, err)
	high = highScores(t, f.db, p.ID, "Arena")
	require.Len(t, high, 1)
	assert.Equal(t, early.ID, high[0].ID)

	// Removing the last score leaves nothing to flag.
	_, err = scores.Delete(ctx, f.alice, early.ID)
	require.NoError(t, err)
	assert.Empty(t, highScores(t, f.db, p.ID, "Arena"))

	_, err = scores.Delete(ctx, f.alice, early.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListScoresFilters(t *testing.T) {
	f := newFixture(t)
	scores := newScoreService(f)
	ctx := context.Background()
	mine := testutil.CreatePlayer(t, f.db, f.alice.UserID, "Hero")
	other := testutil.CreatePlayer(t, f.db, f.bob.UserID, "Villain")

	for _, in := range []ScoreInput{
		{PlayerID: mine.ID, GameMode: "Arena", Points: 10},
		{PlayerID: mine.ID, GameMode: "Arena", Points: 30},
		{PlayerID: mine.ID, GameMode: "Quest", Points: 20},
	} {
		_, err := scores.Submit(ctx, f.alice, in)
		require.NoError(t, err)
	}
	_, err := scores.Submit(ctx, f.bob, ScoreInput{PlayerID: other.ID, GameMode: "Arena", Points: 99})
	require.NoError(t, err)

	result, err := scores.List(ctx, f.alice, ScoreQuery{Page: NewPage(1, 10)})
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)
	assert.Equal(t, 30, result.Rows[0].Points, "best first")

	result, err = scores.List(ctx, f.alice, ScoreQuery{GameMode: "arena", Page: NewPage(1, 10)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)

	result, err = scores.List(ctx, f.alice, ScoreQuery{HighScoresOnly: true, Page: NewPage(1, 10)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)

	result, err = scores.List(ctx, f.admin, ScoreQuery{GameMode: "Arena", HighScoresOnly: true, Page: NewPage(1, 10)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
}

func TestLeaderboard(t *testing.T) {
	f := newFixture(t)
	scores := newScoreService(f)
	ctx := context.Background()

	carol := callerOf(testutil.CreateUser(t, f.db, "carol", domain.RolePlayer))
	entrants := []struct {
		caller Caller
		name   string
		points int
	}{
		{f.alice, "DragonSlayer", 15000},
		{f.bob, "ShadowHunter", 12000},
		{carol, "Lurker", 9000},
	}
	for _, e := range entrants {
		p := testutil.CreatePlayer(t, f.db, e.caller.UserID, e.name)
		_, err := scores.Submit(ctx, e.caller, ScoreInput{PlayerID: p.ID, GameMode: "Arena", Points: e.points})
		require.NoError(t, err)
	}

	board, err := scores.Leaderboard(ctx, "Arena", 2)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, 15000, board[0].Points)
	assert.Equal(t, "DragonSlayer", board[0].PlayerName)
	assert.Equal(t, 2, board[1].Rank)
	assert.Equal(t, 12000, board[1].Points)

	board, err = scores.Leaderboard(ctx, "arena", 0)
	require.NoError(t, err)
	assert.Len(t, board, 3, "mode is case-insensitive and top defaults to 10")

	board, err = scores.Leaderboard(ctx, "Nowhere", 5)
	require.NoError(t, err)
	assert.Empty(t, board)
}

func TestLeaderboardTiesRankEarlierFirst(t *testing.T) {
	f := newFixture(t)
	scores := newScoreService(f)
	a := testutil.CreatePlayer(t, f.db, f.alice.UserID, "Late")
	b := testutil.CreatePlayer(t, f.db, f.bob.UserID, "Early")

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	testutil.CreateScore(t, f.db, domain.Score{PlayerID: a.ID, GameMode: "Arena", Points: 500, IsHighScore: true, AchievedAt: base.Add(time.Minute)})
	testutil.CreateScore(t, f.db, domain.Score{PlayerID: b.ID, GameMode: "Arena", Points: 500, IsHighScore: true, AchievedAt: base})

	board, err := scores.Leaderboard(context.Background(), "Arena", 10)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, "Early", board[0].PlayerName)
	assert.Equal(t, "Late", board[1].PlayerName)
}
