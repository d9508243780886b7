package api

import (
	"game_api/internal/service" // Credentials

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListUsersHandler returns a page of registered users ordered by id
func ListUsersHandler(creds *service.Credentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q PageQuery
		if !bindQuery(c, &q) {
			return
		}
		result, err := creds.ListUsers(c.Request.Context(), q.page())
		if err != nil {
			respondError(c, err)
			return
		}
		respondList(c, result)
	}
}
