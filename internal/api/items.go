package api

import (
	"game_api/internal/service" // Item service
	"net/http"                  // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// ItemListQuery holds the item listing filters
type ItemListQuery struct {
	PageQuery
	PlayerID  *uint  `form:"playerId"`                            // Only items of this player
	ItemType  string `form:"itemType"`                            // Case-insensitive type match
	MinRarity *int   `form:"minRarity" binding:"omitempty,min=1"` // Inclusive lower rarity bound
}

// CreateItemRequest represents a create item request
type CreateItemRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=50"`
	Description  string `json:"description" binding:"max=200"`
	ItemType     string `json:"itemType" binding:"required,max=30"`
	AttackBonus  int    `json:"attackBonus" binding:"min=0,max=1000"`
	DefenseBonus int    `json:"defenseBonus" binding:"min=0,max=1000"`
	Value        int    `json:"value" binding:"min=0"`
	Rarity       *int   `json:"rarity" binding:"omitempty,min=1,max=10"`    // Defaults to 1
	Quantity     *int   `json:"quantity" binding:"omitempty,min=1,max=999"` // Defaults to 1
	PlayerID     *uint  `json:"playerId"`                                   // Omitted for unowned items
}

// UpdateItemRequest represents a partial item update; omitted fields are unchanged
type UpdateItemRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=50"`
	Description *string `json:"description" binding:"omitempty,max=200"`
	IsEquipped  *bool   `json:"isEquipped"`
	Quantity    *int    `json:"quantity" binding:"omitempty,min=1,max=999"`
}

// intOr returns *p, or 0 when p is nil
func intOr(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// ListItemsHandler returns the items visible to the caller, rarest first
func ListItemsHandler(items *service.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		var q ItemListQuery
		if !bindQuery(c, &q) {
			return
		}
		result, err := items.List(c.Request.Context(), caller, service.ItemQuery{
			PlayerID:  q.PlayerID,
			ItemType:  q.ItemType,
			MinRarity: q.MinRarity,
			Page:      q.page(),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		respondList(c, result)
	}
}

// GetItemHandler returns one item
func GetItemHandler(items *service.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		id, ok := parseID(c)
		if !ok {
			return
		}
		item, err := items.Get(c.Request.Context(), caller, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// CreateItemHandler creates an item, optionally owned by a player
func CreateItemHandler(items *service.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		var req CreateItemRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		item, err := items.Create(c.Request.Context(), caller, service.ItemInput{
			Name:         req.Name,
			Description:  req.Description,
			ItemType:     req.ItemType,
			AttackBonus:  req.AttackBonus,
			DefenseBonus: req.DefenseBonus,
			Value:        req.Value,
			Rarity:       intOr(req.Rarity),
			Quantity:     intOr(req.Quantity),
			PlayerID:     req.PlayerID,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		// Log the creation
		logrus.WithFields(logrus.Fields{
			"user_id": caller.UserID, // Caller
			"item_id": item.ID,       // New item
			"rarity":  item.Rarity,   // Rarity
		}).Info("Item created")
		c.JSON(http.StatusCreated, item)
	}
}

// UpdateItemHandler applies a partial update to an item
func UpdateItemHandler(items *service.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		id, ok := parseID(c)
		if !ok {
			return
		}
		var req UpdateItemRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		patch := service.ItemPatch{
			Name:        req.Name,
			Description: req.Description,
			IsEquipped:  req.IsEquipped,
			Quantity:    req.Quantity,
		}
		if _, err := items.Update(c.Request.Context(), caller, id, patch); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// DeleteItemHandler deletes an item
func DeleteItemHandler(items *service.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := requireCaller(c)
		if !ok {
			return
		}
		id, ok := parseID(c)
		if !ok {
			return
		}
		if _, err := items.Delete(c.Request.Context(), caller, id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
