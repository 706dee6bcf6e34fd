package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fundtracker/internal/config"
	"fundtracker/internal/models"
	"fundtracker/internal/repository"
	"fundtracker/internal/service"
)

type FundHandler struct {
	Repo   repository.Repository
	Dates  *service.ReportDateResolver
	Query  config.QueryConfig
	Logger *zap.Logger
}

func (h *FundHandler) Register(r *gin.Engine) {
	group := r.Group("/api/funds")
	group.GET("", h.list)
	group.GET("/:code", h.get)
	group.GET("/:code/performance", h.performance)
}

// fundView is the fund row the browsing endpoints return: the fund's own
// fields plus the manager/strategy names joined in and the snapshot for
// the requested report date.
type fundView struct {
	FundCode          string                  `json:"fund_code"`
	FundName          string                  `json:"fund_name"`
	LaunchDate        *models.Date            `json:"launch_date"`
	ManagerID         *uint                   `json:"manager_id"`
	ManagerName       *string                 `json:"manager_name"`
	StrategyID        *uint                   `json:"strategy_id"`
	Level1Category    *string                 `json:"level1_category"`
	Level2Category    *string                 `json:"level2_category"`
	Level3Category    *string                 `json:"level3_category"`
	LatestPerformance *models.FundPerformance `json:"latest_performance"`
}

func newFundView(fund models.Fund) fundView {
	view := fundView{
		FundCode:   fund.FundCode,
		FundName:   fund.FundName,
		LaunchDate: fund.LaunchDate,
		ManagerID:  fund.ManagerID,
		StrategyID: fund.StrategyID,
	}
	if fund.Manager != nil {
		view.ManagerName = &fund.Manager.ManagerName
	}
	if fund.Strategy != nil {
		view.Level1Category = &fund.Strategy.Level1Category
		view.Level2Category = &fund.Strategy.Level2Category
		view.Level3Category = &fund.Strategy.Level3Category
	}
	return view
}

// @Summary Search funds for one report date
// @Tags funds
// @Success 200 {object} pageResponse
// @Router /api/funds [get]
func (h *FundHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable")
		return
	}
	page, pageSize, err := pageParams(c, h.Query)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return
	}
	sortBy, err := sortByParam(c)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return
	}
	asc, err := orderParam(c)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return
	}
	strategyID, err := uintQueryPtr(c, "strategy_id")
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return
	}
	managerID, err := uintQueryPtr(c, "manager_id")
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return
	}
	minAnnualReturn, err := decimalQueryPtr(c, "min_annual_return")
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return
	}
	maxDrawdown, err := decimalQueryPtr(c, "max_drawdown")
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return
	}
	minSharpe, err := decimalQueryPtr(c, "min_sharpe")
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
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
	if reportDate == nil {
		// Empty store: nothing to browse yet.
		Page(c, []fundView{}, 0, page, pageSize)
		return
	}

	params := repository.SearchFundsParams{
		ReportDate:      *reportDate,
		Keyword:         stringQueryPtr(c, "keyword"),
		StrategyID:      strategyID,
		ManagerID:       managerID,
		MinAnnualReturn: minAnnualReturn,
		MaxDrawdown:     maxDrawdown,
		MinSharpe:       minSharpe,
		SortBy:          sortBy,
		Asc:             asc,
		Limit:           pageSize,
		Offset:          (page - 1) * pageSize,
	}
	perfs, err := h.Repo.SearchPerformances(ctx, params)
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}
	total, err := h.Repo.CountPerformances(ctx, params)
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}

	items, err := h.assemble(c, perfs)
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}
	Page(c, items, total, page, pageSize)
}

// assemble joins a page of performance rows back to their funds, keeping
// the rows' sort order.
func (h *FundHandler) assemble(c *gin.Context, perfs []models.FundPerformance) ([]fundView, error) {
	items := make([]fundView, 0, len(perfs))
	if len(perfs) == 0 {
		return items, nil
	}
	codes := make([]string, 0, len(perfs))
	for _, perf := range perfs {
		codes = append(codes, perf.FundCode)
	}
	funds, err := h.Repo.ListFundsByCodes(c.Request.Context(), codes)
	if err != nil {
		return nil, err
	}
	fundByCode := make(map[string]models.Fund, len(funds))
	for _, fund := range funds {
		fundByCode[fund.FundCode] = fund
	}
	for i := range perfs {
		perf := perfs[i]
		fund, ok := fundByCode[perf.FundCode]
		if !ok {
			// Orphan snapshot; the FK should prevent this.
			continue
		}
		view := newFundView(fund)
		view.LatestPerformance = &perf
		items = append(items, view)
	}
	return items, nil
}

// @Summary Fund detail with its snapshot for one report date
// @Tags funds
// @Success 200 {object} fundView
// @Router /api/funds/{code} [get]
func (h *FundHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable")
		return
	}
	code := strings.TrimSpace(c.Param("code"))
	explicitDate, err := dateQueryPtr(c, "report_date")
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	fund, err := h.Repo.GetFundByCode(ctx, code)
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}
	if fund == nil {
		Error(c, http.StatusNotFound, "fund not found")
		return
	}

	view := newFundView(*fund)
	reportDate, err := h.Dates.Resolve(ctx, explicitDate)
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}
	if reportDate != nil {
		perf, err := h.Repo.GetPerformanceSnapshot(ctx, code, *reportDate)
		if err != nil {
			storageError(c, h.Logger, err)
			return
		}
		view.LatestPerformance = perf
	}
	c.JSON(http.StatusOK, view)
}

type performanceHistory struct {
	FundCode     string                   `json:"fund_code"`
	FundName     string                   `json:"fund_name"`
	Performances []models.FundPerformance `json:"performances"`
}

// @Summary Performance history for one fund
// @Tags funds
// @Success 200 {object} performanceHistory
// @Router /api/funds/{code}/performance [get]
func (h *FundHandler) performance(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable")
		return
	}
	code := strings.TrimSpace(c.Param("code"))
	start, err := dateQueryPtr(c, "start_date")
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return
	}
	end, err := dateQueryPtr(c, "end_date")
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	fund, err := h.Repo.GetFundByCode(ctx, code)
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}
	if fund == nil {
		Error(c, http.StatusNotFound, "fund not found")
		return
	}

	perfs, err := h.Repo.ListFundPerformances(ctx, code, start, end)
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}
	if perfs == nil {
		perfs = []models.FundPerformance{}
	}
	c.JSON(http.StatusOK, performanceHistory{
		FundCode:     fund.FundCode,
		FundName:     fund.FundName,
		Performances: perfs,
	})
}
