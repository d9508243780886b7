package api

import (
	"game_api/internal/service" // Pagination
	"net/http"                  // HTTP status codes
	"strconv"                   // Header formatting

	"github.com/gin-gonic/gin" // Gin web framework
)

// PageQuery holds the pagination query parameters shared by every listing
type PageQuery struct {
	Page     int `form:"page"`     // 1-based page number
	PageSize int `form:"pageSize"` // Rows per page
}

// page clamps the raw parameters
func (q PageQuery) page() service.Page {
	return service.NewPage(q.Page, q.PageSize)
}

// respondList writes one page of rows with the pagination headers
func respondList[T any](c *gin.Context, result *service.Result[T]) {
	c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))                // Total matching rows
	c.Header("X-Page", strconv.Itoa(result.Page.Number))                          // Current page
	c.Header("X-Page-Size", strconv.Itoa(result.Page.Size))                       // Page size
	c.Header("X-Total-Pages", strconv.Itoa(result.Page.TotalPages(result.Total))) // Total pages
	rows := result.Rows
	if rows == nil {
		rows = []T{} // Empty pages render as []
	}
	c.JSON(http.StatusOK, rows)
}
