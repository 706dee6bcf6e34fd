package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fundtracker/internal/models"
	"fundtracker/internal/repository"
	"fundtracker/internal/service"
)

const (
	rankingDefaultLimit = 50
	rankingMaxLimit     = 200
)

type AnalyticsHandler struct {
	Repo    repository.Repository
	Dates   *service.ReportDateResolver
	Compare *service.CompareService
	Logger  *zap.Logger
}

func (h *AnalyticsHandler) Register(r *gin.Engine) {
	group := r.Group("/api/analytics")
	group.GET("/stats", h.stats)
	group.GET("/report-dates", h.reportDates)
	group.GET("/ranking", h.ranking)
	group.GET("/strategy-distribution", h.strategyDistribution)
	group.POST("/compare", h.compare)
}

type statsResponse struct {
	repository.SystemStats
	LatestReportDate *models.Date `json:"latest_report_date"`
}

// @Summary System-wide row counts and the latest report date
// @Tags analytics
// @Success 200 {object} statsResponse
// @Router /api/analytics/stats [get]
func (h *AnalyticsHandler) stats(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable")
		return
	}
	stats, err := h.Repo.SystemStats(c.Request.Context(), nil)
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}
	out := statsResponse{SystemStats: stats}
	if stats.LatestReportDate != nil {
		latest := models.NewDate(*stats.LatestReportDate)
		out.LatestReportDate = &latest
	}
	c.JSON(http.StatusOK, out)
}

// @Summary All known report dates, newest first
// @Tags analytics
// @Success 200 {object} map[string]any
// @Router /api/analytics/report-dates [get]
func (h *AnalyticsHandler) reportDates(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable")
		return
	}
	dates, err := h.Repo.ListReportDates(c.Request.Context())
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}
	items := make([]models.Date, 0, len(dates))
	for _, date := range dates {
		items = append(items, models.NewDate(date))
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

type rankingItem struct {
	Rank           int                     `json:"rank"`
	FundCode       string                  `json:"fund_code"`
	FundName       string                  `json:"fund_name"`
	ManagerName    *string                 `json:"manager_name"`
	Level3Category *string                 `json:"level3_category"`
	Value          *decimal.Decimal        `json:"value"`
	Performance    *models.FundPerformance `json:"performance"`
}

// @Summary Top funds by one performance metric
// @Tags analytics
// @Success 200 {object} map[string]any
// @Router /api/analytics/ranking [get]
func (h *AnalyticsHandler) ranking(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable")
		return
	}
	metric := strings.TrimSpace(c.Query("metric"))
	if metric == "" {
		metric = "annual_return"
	}
	if !models.IsPerformanceField(metric) {
		Error(c, http.StatusBadRequest, fmt.Sprintf("unknown metric %q; valid fields: %s",
			metric, strings.Join(models.PerformanceFieldNames(), ", ")))
		return
	}
	limit := rankingDefaultLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > rankingMaxLimit {
			Error(c, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", rankingMaxLimit))
			return
		}
		limit = parsed
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
		c.JSON(http.StatusOK, gin.H{
			"report_date": nil,
			"metric":      metric,
			"items":       []rankingItem{},
		})
		return
	}

	perfs, err := h.Repo.RankPerformances(ctx, repository.RankingParams{
		ReportDate: *reportDate,
		Metric:     metric,
		StrategyID: strategyID,
		ManagerID:  managerID,
		Limit:      limit,
	})
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}

	items, err := h.assembleRanking(ctx, metric, perfs)
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"report_date": models.NewDate(*reportDate),
		"metric":      metric,
		"items":       items,
	})
}

func (h *AnalyticsHandler) assembleRanking(ctx context.Context, metric string, perfs []models.FundPerformance) ([]rankingItem, error) {
	items := make([]rankingItem, 0, len(perfs))
	if len(perfs) == 0 {
		return items, nil
	}
	codes := make([]string, 0, len(perfs))
	for _, perf := range perfs {
		codes = append(codes, perf.FundCode)
	}
	funds, err := h.Repo.ListFundsByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	fundByCode := make(map[string]models.Fund, len(funds))
	for _, fund := range funds {
		fundByCode[fund.FundCode] = fund
	}
	for i := range perfs {
		perf := perfs[i]
		item := rankingItem{
			Rank:        i + 1,
			FundCode:    perf.FundCode,
			Value:       perf.Metric(metric),
			Performance: &perf,
		}
		if fund, ok := fundByCode[perf.FundCode]; ok {
			item.FundName = fund.FundName
			if fund.Manager != nil {
				item.ManagerName = &fund.Manager.ManagerName
			}
			if fund.Strategy != nil {
				item.Level3Category = &fund.Strategy.Level3Category
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// @Summary Fund counts per strategy for one report date
// @Tags analytics
// @Success 200 {object} map[string]any
// @Router /api/analytics/strategy-distribution [get]
func (h *AnalyticsHandler) strategyDistribution(c *gin.Context) {
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
	if reportDate == nil {
		c.JSON(http.StatusOK, gin.H{
			"report_date": nil,
			"items":       []repository.StrategyDistributionRow{},
		})
		return
	}
	rows, err := h.Repo.StrategyDistribution(ctx, *reportDate)
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}
	if rows == nil {
		rows = []repository.StrategyDistributionRow{}
	}
	c.JSON(http.StatusOK, gin.H{
		"report_date": models.NewDate(*reportDate),
		"items":       rows,
	})
}

type compareRequest struct {
	FundCodes []string `json:"fund_codes"`
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
}

// @Summary Compare 2 to 5 funds side by side
// @Tags analytics
// @Success 200 {object} service.CompareResult
// @Router /api/analytics/compare [post]
func (h *AnalyticsHandler) compare(c *gin.Context) {
	if h.Compare == nil {
		Error(c, http.StatusInternalServerError, "compare unavailable")
		return
	}
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.FundCodes) < service.CompareMinFunds || len(req.FundCodes) > service.CompareMaxFunds {
		Error(c, http.StatusBadRequest, fmt.Sprintf("fund_codes must contain between %d and %d codes",
			service.CompareMinFunds, service.CompareMaxFunds))
		return
	}
	start, err := parseBodyDate(req.StartDate, "start_date")
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return
	}
	end, err := parseBodyDate(req.EndDate, "end_date")
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, missing, err := h.Compare.Compare(c.Request.Context(), req.FundCodes, start, end)
	if err != nil {
		storageError(c, h.Logger, err)
		return
	}
	if len(missing) > 0 {
		Error(c, http.StatusNotFound, "unknown fund codes: "+strings.Join(missing, ", "))
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseBodyDate(value *string, field string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	d, err := models.ParseDate(strings.TrimSpace(*value))
	if err != nil {
		return nil, fmt.Errorf("%s must be a YYYY-MM-DD date", field)
	}
	t := d.Time()
	return &t, nil
}
