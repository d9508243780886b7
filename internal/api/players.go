package api

import (
	"game_api/internal/service" // Player service
	"net/http"                  // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// CreatePlayerRequest represents a create player request
type CreatePlayerRequest struct {
	Name string `json:"name" binding:"required,min=2,max=50"` // Display name
}

// UpdatePlayerRequest represents a partial player update; omitted fields are unchanged
type UpdatePlayerRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=2,max=50"`
	Level      *int    `json:"level" binding:"omitempty,min=1,max=100"`
	Experience *int    `json:"experience" binding:"omitempty,min=0"`
	Gold       *int    `json:"gold" binding:"omitempty,min=0"`
	Health     *int    `json:"health" binding:"omitempty,min=1,max=1000"`
	Mana       *int    `json:"mana" binding:"omitempty,min=0,max=1000"`
}

// ListPlayersHandler returns the caller's players, or every player for admins
func ListPlayersHandler(players *service.PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		var q PageQuery
		if !bindQuery(c, &q) {
			return
		}
		result, err := players.List(c.Request.Context(), caller, q.page())
		if err != nil {
			respondError(c, err)
			return
		}
		respondList(c, result)
	}
}

// GetPlayerHandler returns one player
func GetPlayerHandler(players *service.PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		id, ok := parseID(c)
		if !ok {
			return
		}
		player, err := players.Get(c.Request.Context(), caller, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, player)
	}
}

// CreatePlayerHandler creates a player owned by the caller
func CreatePlayerHandler(players *service.PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		var req CreatePlayerRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		player, err := players.Create(c.Request.Context(), caller, req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		// Log the creation
		logrus.WithFields(logrus.Fields{
			"user_id":   caller.UserID, // Owner
			"player_id": player.ID,     // New player
		}).Info("Player created")
		c.JSON(http.StatusCreated, player)
	}
}

// UpdatePlayerHandler applies a partial update to a player
func UpdatePlayerHandler(players *service.PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		id, ok := parseID(c)
		if !ok {
			return
		}
		var req UpdatePlayerRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		patch := service.PlayerPatch{
			Name:       req.Name,
			Level:      req.Level,
			Experience: req.Experience,
			Gold:       req.Gold,
			Health:     req.Health,
			Mana:       req.Mana,
		}
		if _, err := players.Update(c.Request.Context(), caller, id, patch); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// DeletePlayerHandler deletes a player with its characters and scores
func DeletePlayerHandler(players *service.PlayerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		id, ok := parseID(c)
		if !ok {
			return
		}
		if _, err := players.Delete(c.Request.Context(), caller, id); err != nil {
			respondError(c, err)
			return
		}
		// Log the deletion
		logrus.WithFields(logrus.Fields{
			"user_id":   caller.UserID, // Caller
			"player_id": id,            // Deleted player
		}).Info("Player deleted")
		c.Status(http.StatusNoContent)
	}
}
