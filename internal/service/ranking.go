package service

import (
	"time"

	"game_api/internal/domain"
)

const (
	DefaultLeaderboardSize = 10
	MaxLeaderboardSize     = 100
)

// LeaderboardEntry is the public projection of a ranked score.
type LeaderboardEntry struct {
	Rank            int       `json:"rank"`
	PlayerName      string    `json:"playerName"`
	Points          int       `json:"points"`
	Kills           int       `json:"kills"`
	Deaths          int       `json:"deaths"`
	TimePlayed      float64   `json:"timePlayed"`
	DifficultyLevel int       `json:"difficultyLevel"`
	AchievedAt      time.Time `json:"achievedAt"`
}

// ClampTop bounds a requested leaderboard size the same way page sizes are bounded.
func ClampTop(top int) int {
	switch {
	case top < 1:
		return DefaultLeaderboardSize
	case top > MaxLeaderboardSize:
		return MaxLeaderboardSize
	}
	return top
}

// isNewHigh reports whether points beats every existing score. Ties keep the
// existing holder.
func isNewHigh(existing []domain.Score, points int) bool {
	for _, s := range existing {
		if points <= s.Points {
			return false
		}
	}
	return true
}

// bestScore picks the score that should hold the high-score flag: most points,
// then earliest achievement, then lowest id. Nil when scores is empty.
func bestScore(scores []domain.Score) *domain.Score {
	var best *domain.Score
	for i := range scores {
		s := &scores[i]
		switch {
		case best == nil:
			best = s
		case s.Points > best.Points:
			best = s
		case s.Points == best.Points && s.AchievedAt.Before(best.AchievedAt):
			best = s
		case s.Points == best.Points && s.AchievedAt.Equal(best.AchievedAt) && s.ID < best.ID:
			best = s
		}
	}
	return best
}

// rank numbers entries 1..n in their current order.
func rank(entries []LeaderboardEntry) {
	for i := range entries {
		entries[i].Rank = i + 1
	}
}
