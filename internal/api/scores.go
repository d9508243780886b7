package api

import (
	"game_api/internal/metrics" // Score counters
	"game_api/internal/service" // Score service
	"net/http"                  // HTTP status codes
	"strconv"                   // Query parsing

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// ScoreListQuery holds the score listing filters
type ScoreListQuery struct {
	PageQuery
	PlayerID       *uint  `form:"playerId"`       // Only scores of this player
	GameMode       string `form:"gameMode"`       // Case-insensitive mode match
	HighScoresOnly bool   `form:"highScoresOnly"` // Only flagged high scores
}

// SubmitScoreRequest represents a finished game session
type SubmitScoreRequest struct {
	PlayerID        uint    `json:"playerId" binding:"required"`
	GameMode        string  `json:"gameMode" binding:"required,max=50"`
	Points          int     `json:"points" binding:"min=0"`
	Kills           int     `json:"kills" binding:"min=0"`
	Deaths          int     `json:"deaths" binding:"min=0"`
	TimePlayed      float64 `json:"timePlayed" binding:"min=0"`
	DifficultyLevel *int    `json:"difficultyLevel" binding:"omitempty,min=1,max=100"` // Defaults to 1
}

// ListScoresHandler returns the scores visible to the caller, best first
func ListScoresHandler(scores *service.ScoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		var q ScoreListQuery
		if !bindQuery(c, &q) {
			return
		}
		result, err := scores.List(c.Request.Context(), caller, service.ScoreQuery{
			PlayerID:       q.PlayerID,
			GameMode:       q.GameMode,
			HighScoresOnly: q.HighScoresOnly,
			Page:           q.page(),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		respondList(c, result)
	}
}

// GetScoreHandler returns one score
func GetScoreHandler(scores *service.ScoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		id, ok := parseID(c)
		if !ok {
			return
		}
		score, err := scores.Get(c.Request.Context(), caller, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, score)
	}
}

// SubmitScoreHandler records a game session result and maintains the high-score flag
func SubmitScoreHandler(scores *service.ScoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		var req SubmitScoreRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		score, err := scores.Submit(c.Request.Context(), caller, service.ScoreInput{
			PlayerID:        req.PlayerID,
			GameMode:        req.GameMode,
			Points:          req.Points,
			Kills:           req.Kills,
			Deaths:          req.Deaths,
			TimePlayed:      req.TimePlayed,
			DifficultyLevel: intOr(req.DifficultyLevel),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		metrics.ScoreSubmitted(score.IsHighScore)
		// Log the submission
		logrus.WithFields(logrus.Fields{
			"player_id":  score.PlayerID,    // Player
			"game_mode":  score.GameMode,    // Game mode
			"points":     score.Points,      // Points
			"high_score": score.IsHighScore, // New best
		}).Info("Score submitted")
		c.JSON(http.StatusCreated, score)
	}
}

// DeleteScoreHandler deletes a score
func DeleteScoreHandler(scores *service.ScoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		id, ok := parseID(c)
		if !ok {
			return
		}
		if _, err := scores.Delete(c.Request.Context(), caller, id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// LeaderboardHandler returns the top scores of a game mode. No auth required.
func LeaderboardHandler(scores *service.ScoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		top, err := strconv.Atoi(c.Query("top"))
		if err != nil {
			top = 0 // Missing or malformed falls back to the default
		}
		entries, err := scores.Leaderboard(c.Request.Context(), c.Param("gameMode"), top)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}
