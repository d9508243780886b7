package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"game_api/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Locker serializes work on a key across every API instance sharing it.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// ScoreQuery filters a score listing.
type ScoreQuery struct {
	PlayerID       *uint
	GameMode       string
	HighScoresOnly bool
	Page           Page
}

// ScoreInput is a submitted game session result.
type ScoreInput struct {
	PlayerID        uint
	GameMode        string
	Points          int
	Kills           int
	Deaths          int
	TimePlayed      float64
	DifficultyLevel int
}

// ScoreService records scores, keeps one high score per (player, game mode) and
// builds leaderboards.
type ScoreService struct {
	res    *resource[domain.Score]
	locker Locker
}

func NewScoreService(db *gorm.DB, auth *Authority, locker Locker) *ScoreService {
	return &ScoreService{
		res: &resource[domain.Score]{
			db:           db,
			auth:         auth,
			name:         "Score",
			owner:        func(s *domain.Score) *uint { return &s.PlayerID },
			playerColumn: "player_id",
			mine: func(tx *gorm.DB, userID uint) *gorm.DB {
				return tx.Where("player_id IN (?)", auth.ownedPlayerIDs(tx, userID))
			},
			order: []string{"points DESC", "achieved_at DESC", "id DESC"},
		},
		locker: locker,
	}
}

// scoreLockKey names the (player, game mode) pair exactly as Submit matches it:
// game modes are case-sensitive there, so "Arena" and "arena" lock apart.
func scoreLockKey(playerID uint, gameMode string) string {
	return fmt.Sprintf("lock:score:%d:%s", playerID, gameMode)
}

// List returns scores visible to the caller. The game mode filter is
// case-insensitive.
func (s *ScoreService) List(ctx context.Context, caller Caller, q ScoreQuery) (*Result[domain.Score], error) {
	var scopes []Scope
	if mode := strings.TrimSpace(q.GameMode); mode != "" {
		scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("LOWER(game_mode) = ?", strings.ToLower(mode))
		})
	}
	if q.HighScoresOnly {
		scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("is_high_score = ?", true)
		})
	}
	return s.res.list(ctx, caller, ListQuery{PlayerID: q.PlayerID, Page: q.Page, Scopes: scopes})
}

func (s *ScoreService) Get(ctx context.Context, caller Caller, id uint) (*domain.Score, error) {
	return s.res.get(ctx, caller, id)
}

// Submit records a score. Under a lock on (player, game mode) and in one
// transaction it loads the pair's scores, flags the new row when its points are
// strictly above the current maximum and clears the previous holder.
func (s *ScoreService) Submit(ctx context.Context, caller Caller, in ScoreInput) (*domain.Score, error) {
	if err := s.res.auth.Authorize(ctx, caller, in.PlayerID); err != nil {
		return nil, err
	}
	if caller.IsAdmin() {
		if err := s.res.requirePlayer(ctx, in.PlayerID); err != nil {
			return nil, err
		}
	}
	if in.DifficultyLevel == 0 {
		in.DifficultyLevel = 1
	}
	unlock, err := s.locker.Lock(ctx, scoreLockKey(in.PlayerID, in.GameMode))
	if err != nil {
		return nil, fmt.Errorf("lock scores of player %d: %w", in.PlayerID, err)
	}
	defer unlock()

	score := &domain.Score{
		GameMode:        in.GameMode,
		Points:          in.Points,
		Kills:           in.Kills,
		Deaths:          in.Deaths,
		TimePlayed:      in.TimePlayed,
		DifficultyLevel: in.DifficultyLevel,
		PlayerID:        in.PlayerID,
		AchievedAt:      time.Now().UTC(),
	}
	err = s.res.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []domain.Score
		if err := tx.Where("player_id = ? AND game_mode = ?", in.PlayerID, in.GameMode).Find(&existing).Error; err != nil {
			return fmt.Errorf("load scores: %w", err)
		}
		score.IsHighScore = isNewHigh(existing, in.Points)
		if score.IsHighScore {
			err := tx.Model(&domain.Score{}).
				Where("player_id = ? AND game_mode = ? AND is_high_score = ?", in.PlayerID, in.GameMode, true).
				Update("is_high_score", false).Error
			if err != nil {
				return fmt.Errorf("clear previous high score: %w", err)
			}
		}
		if err := tx.Create(score).Error; err != nil {
			return fmt.Errorf("create score: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return score, nil
}

// Delete removes a score. When it held the high-score flag, the best remaining
// score of the same (player, game mode) takes it over.
func (s *ScoreService) Delete(ctx context.Context, caller Caller, id uint) (*domain.Score, error) {
	score, err := s.res.get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	unlock, err := s.locker.Lock(ctx, scoreLockKey(score.PlayerID, score.GameMode))
	if err != nil {
		return nil, fmt.Errorf("lock scores of player %d: %w", score.PlayerID, err)
	}
	defer unlock()

	var promoted *domain.Score
	err = s.res.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.res.find(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(current).Error; err != nil {
			return fmt.Errorf("delete score: %w", err)
		}
		if !current.IsHighScore {
			return nil
		}
		var remaining []domain.Score
		if err := tx.Where("player_id = ? AND game_mode = ?", current.PlayerID, current.GameMode).Find(&remaining).Error; err != nil {
			return fmt.Errorf("load remaining scores: %w", err)
		}
		promoted = bestScore(remaining)
		if promoted == nil {
			return nil
		}
		promoted.IsHighScore = true
		return tx.Model(&domain.Score{}).Where("id = ?", promoted.ID).Update("is_high_score", true).Error
	})
	if err != nil {
		return nil, err
	}
	if promoted != nil {
		logrus.WithFields(logrus.Fields{
			"deleted_score_id":  id,
			"promoted_score_id": promoted.ID,
			"player_id":         promoted.PlayerID,
			"game_mode":         promoted.GameMode,
		}).Info("High score reassigned")
	}
	return score, nil
}

// Leaderboard ranks the top scores of a game mode across all players. The mode
// is matched case-insensitively; equal points rank the earlier achievement first.
func (s *ScoreService) Leaderboard(ctx context.Context, gameMode string, top int) ([]LeaderboardEntry, error) {
	entries := make([]LeaderboardEntry, 0, ClampTop(top))
	err := s.res.db.WithContext(ctx).
		Table("scores").
		Select("players.name AS player_name, scores.points, scores.kills, scores.deaths, scores.time_played, scores.difficulty_level, scores.achieved_at").
		Joins("JOIN players ON players.id = scores.player_id").
		Where("LOWER(scores.game_mode) = ?", strings.ToLower(strings.TrimSpace(gameMode))).
		Order("scores.points DESC").
		Order("scores.achieved_at ASC").
		Order("scores.id ASC").
		Limit(ClampTop(top)).
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("load leaderboard %q: %w", gameMode, err)
	}
	rank(entries)
	return entries, nil
}
