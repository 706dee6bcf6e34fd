package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type pageResponse struct {
	Items      any   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
}

// Page writes the standard paginated envelope. total_pages is
// ceil(total/pageSize); an empty result is a valid page, not an error.
func Page(c *gin.Context, items any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, pageResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// storageError hides storage failures behind a generic 500; the detail
// goes to the log only.
func storageError(c *gin.Context, logger *zap.Logger, err error) {
	if logger != nil {
		logger.Error("storage error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	Error(c, http.StatusInternalServerError, "internal error")
}

func totalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
