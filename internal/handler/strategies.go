package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fundtracker/internal/repository"
	"fundtracker/internal/service"
)

type StrategyHandler struct {
	Repo   repository.Repository
	Dates  *service.ReportDateResolver
	Logger *zap.Logger
}

func (h *StrategyHandler) Register(r *gin.Engine) {
	r.GET("/api/strategies", h.list)
}

// @Summary List strategies with fund counts for one report date
// @Tags strategies
// @Success 200 {object} map[string]any
// @Router /api/strategies [get]
func (h *StrategyHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable")
		return
	}
	explicitDate, err := dateQueryPtr(c, "report_date")
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	reportDate, err := h.Dates.Resolve(ctx, explicitDate)
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}
	rows, err := h.Repo.ListStrategiesWithCounts(ctx, reportDate)
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}
	if rows == nil {
		rows = []repository.StrategyCountRow{}
	}
	c.JSON(http.StatusOK, gin.H{
		"items": rows,
		"total": len(rows),
	})
}
