package api

import (
	"game_api/internal/service" // Character service
	"net/http"                  // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// CharacterListQuery holds the character listing filters
type CharacterListQuery struct {
	PageQuery
	PlayerID       *uint  `form:"playerId"`       // Only characters of this player
	CharacterClass string `form:"characterClass"` // Case-insensitive class match
}

// CreateCharacterRequest represents a create character request
type CreateCharacterRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=50"`
	CharacterClass string `json:"characterClass" binding:"required,min=2,max=30"`
	PlayerID       uint   `json:"playerId" binding:"required"`
}

// UpdateCharacterRequest represents a partial character update; omitted fields are unchanged
type UpdateCharacterRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=50"`
	Level        *int    `json:"level" binding:"omitempty,min=1,max=100"`
	Experience   *int    `json:"experience" binding:"omitempty,min=0"`
	Strength     *int    `json:"strength" binding:"omitempty,min=1,max=1000"`
	Intelligence *int    `json:"intelligence" binding:"omitempty,min=1,max=1000"`
	Dexterity    *int    `json:"dexterity" binding:"omitempty,min=1,max=1000"`
	Vitality     *int    `json:"vitality" binding:"omitempty,min=1,max=1000"`
	Health       *int    `json:"health" binding:"omitempty,min=1,max=1000"`
	IsActive     *bool   `json:"isActive"`
}

// ListCharactersHandler returns the characters visible to the caller
func ListCharactersHandler(characters *service.CharacterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		var q CharacterListQuery
		if !bindQuery(c, &q) {
			return
		}
		result, err := characters.List(c.Request.Context(), caller, service.CharacterQuery{
			PlayerID:       q.PlayerID,
			CharacterClass: q.CharacterClass,
			Page:           q.page(),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		respondList(c, result)
	}
}

// GetCharacterHandler returns one character
func GetCharacterHandler(characters *service.CharacterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		id, ok := parseID(c)
		if !ok {
			return
		}
		character, err := characters.Get(c.Request.Context(), caller, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, character)
	}
}

// CreateCharacterHandler creates a character for a player the caller owns
func CreateCharacterHandler(characters *service.CharacterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		var req CreateCharacterRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		character, err := characters.Create(c.Request.Context(), caller, req.PlayerID, req.Name, req.CharacterClass)
		if err != nil {
			respondError(c, err)
			return
		}
		// Log the creation
		logrus.WithFields(logrus.Fields{
			"user_id":      caller.UserID,            // Caller
			"player_id":    character.PlayerID,       // Owning player
			"character_id": character.ID,             // New character
			"class":        character.CharacterClass, // Class
		}).Info("Character created")
		c.JSON(http.StatusCreated, character)
	}
}

// UpdateCharacterHandler applies a partial update to a character
func UpdateCharacterHandler(characters *service.CharacterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		id, ok := parseID(c)
		if !ok {
			return
		}
		var req UpdateCharacterRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		patch := service.CharacterPatch{
			Name:         req.Name,
			Level:        req.Level,
			Experience:   req.Experience,
			Strength:     req.Strength,
			Intelligence: req.Intelligence,
			Dexterity:    req.Dexterity,
			Vitality:     req.Vitality,
			Health:       req.Health,
			IsActive:     req.IsActive,
		}
		if _, err := characters.Update(c.Request.Context(), caller, id, patch); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// DeleteCharacterHandler deletes a character
func DeleteCharacterHandler(characters *service.CharacterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		id, ok := parseID(c)
		if !ok {
			return
		}
		if _, err := characters.Delete(c.Request.Context(), caller, id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
