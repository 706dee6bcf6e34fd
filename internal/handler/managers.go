package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fundtracker/internal/config"
	"fundtracker/internal/models"
	"fundtracker/internal/repository"
)

type ManagerHandler struct {
	Repo   repository.Repository
	Query  config.QueryConfig
	Logger *zap.Logger
}

func (h *ManagerHandler) Register(r *gin.Engine) {
	r.GET("/api/managers", h.list)
}

// @Summary List managers
// @Tags managers
// @Success 200 {object} pageResponse
// @Router /api/managers [get]
func (h *ManagerHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable")
		return
	}
	page, pageSize, err := pageParams(c, h.Query)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return
	}

	params := repository.ListManagersParams{
		Keyword: stringQueryPtr(c, "keyword"),
		Limit:   pageSize,
		Offset:  (page - 1) * pageSize,
	}
	ctx := c.Request.Context()
	items, err := h.Repo.ListManagers(ctx, params)
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}
	total, err := h.Repo.CountManagers(ctx, params)
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}
	if items == nil {
		items = []models.Manager{}
	}
	Page(c, items, total, page, pageSize)
}
