package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fundtracker/internal/models"
	"fundtracker/internal/repository"
)

// Comparison cardinality bounds.
const (
	CompareMinFunds = 2
	CompareMaxFunds = 5
)

// CompareService assembles side-by-side fund views for the comparison
// screen: the performance series inside the requested range, the latest
// snapshot in that range, and the radar projection the chart draws.
type CompareService struct {
	Repo repository.Repository
}

type CompareFund struct {
	FundCode     string                   `json:"fund_code"`
	FundName     string                   `json:"fund_name"`
	ManagerName  *string                  `json:"manager_name"`
	StrategyName *string                  `json:"strategy_name"`
	Latest       *models.FundPerformance  `json:"latest"`
	Performances []models.FundPerformance `json:"performances"`
	Radar        []RadarAxis              `json:"radar"`
}

type CompareResult struct {
	Funds []CompareFund `json:"funds"`
}

// RadarAxis is one spoke of the comparison radar chart: the absolute
// metric value scaled onto a fixed 0..1 axis. Purely presentational.
type RadarAxis struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

// radarAxes fixes the five chart spokes and their axis maxima. The maxima
// are display scale only; values clamp at 1.
var radarAxes = []struct {
	metric  string
	axisMax float64
}{
	{"annual_return", 0.5},
	{"annual_sharpe", 5.0},
	{"cumulative_return", 2.0},
	{"max_drawdown", 0.5},
	{"annual_volatility", 0.5},
}

// Compare fetches 2..5 funds. Codes that do not exist come back in
// missing; cardinality validation is the caller's job. Funds with no rows
// in range are kept with an empty series and a nil latest so the client
// can show "no data" instead of silently shrinking the set.
func (s *CompareService) Compare(ctx context.Context, codes []string, start, end *time.Time) (CompareResult, []string, error) {
	funds, err := s.Repo.ListFundsByCodes(ctx, codes)
	if err != nil {
		return CompareResult{}, nil, err
	}
	fundByCode := make(map[string]models.Fund, len(funds))
	for _, fund := range funds {
		fundByCode[fund.FundCode] = fund
	}
	var missing []string
	for _, code := range codes {
		if _, ok := fundByCode[code]; !ok {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return CompareResult{}, missing, nil
	}

	perfs, err := s.Repo.ListPerformancesByCodes(ctx, codes, start, end)
	if err != nil {
		return CompareResult{}, nil, err
	}
	seriesByCode := make(map[string][]models.FundPerformance, len(codes))
	for _, perf := range perfs {
		seriesByCode[perf.FundCode] = append(seriesByCode[perf.FundCode], perf)
	}

	result := CompareResult{Funds: make([]CompareFund, 0, len(codes))}
	for _, code := range codes {
		fund := fundByCode[code]
		series := seriesByCode[code]
		sort.Slice(series, func(i, j int) bool {
			return series[i].ReportDate.Time().Before(series[j].ReportDate.Time())
		})
		if series == nil {
			series = []models.FundPerformance{}
		}
		var latest *models.FundPerformance
		if len(series) > 0 {
			latest = &series[len(series)-1]
		}
		entry := CompareFund{
			FundCode:     fund.FundCode,
			FundName:     fund.FundName,
			Latest:       latest,
			Performances: series,
			Radar:        RadarProjection(latest),
		}
		if fund.Manager != nil {
			entry.ManagerName = &fund.Manager.ManagerName
		}
		if fund.Strategy != nil {
			entry.StrategyName = &fund.Strategy.Level3Category
		}
		result.Funds = append(result.Funds, entry)
	}
	return result, nil, nil
}

// RadarProjection maps a snapshot onto the five fixed radar spokes:
// abs(metric) / axisMax, clamped to [0, 1]. A nil snapshot or metric
// projects to zero.
func RadarProjection(perf *models.FundPerformance) []RadarAxis {
	axes := make([]RadarAxis, 0, len(radarAxes))
	for _, axis := range radarAxes {
		value := 0.0
		if raw := perf.Metric(axis.metric); raw != nil {
			abs, _ := raw.Abs().Div(decimal.NewFromFloat(axis.axisMax)).Float64()
			if abs > 1 {
				abs = 1
			}
			value = abs
		}
		axes = append(axes, RadarAxis{Metric: axis.metric, Value: value})
	}
	return axes
}
