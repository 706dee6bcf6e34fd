package models

import (
	"sort"
	"strings"
)

// PerformanceFields is the allow-list of sortable/rankable metric columns.
// It is the only defense against arbitrary-column sorting: any sort_by or
// ranking metric outside this set must be rejected at the boundary, never
// silently replaced.
var PerformanceFields = map[string]struct{}{
	"weekly_excess": {}, "weekly_return": {},
	"monthly_excess": {}, "monthly_return": {}, "monthly_max_drawdown": {},
	"quarterly_excess": {}, "quarterly_return": {}, "quarterly_max_drawdown": {},
	"semi_annual_excess": {}, "semi_annual_return": {}, "semi_annual_max_drawdown": {},
	"annual_excess": {}, "annual_return_ytd": {}, "annual_max_drawdown": {},
	"ytd_excess": {}, "ytd_return": {}, "ytd_max_drawdown": {},
	"annual_return": {}, "cumulative_return": {}, "max_drawdown": {}, "annual_volatility": {},
	"annual_sharpe": {}, "annual_calmar": {}, "annual_sortino": {},
	"inception_sharpe": {}, "inception_calmar": {}, "inception_sortino": {},
}

// IsPerformanceField reports whether name is an allow-listed metric column.
func IsPerformanceField(name string) bool {
	_, ok := PerformanceFields[name]
	return ok
}

// IsDrawdownField reports whether the metric ranks ascending: a smaller
// drawdown is a better drawdown, while every other metric ranks descending.
func IsDrawdownField(name string) bool {
	return strings.Contains(name, "drawdown")
}

// PerformanceFieldNames returns the allow-list in sorted order, for error
// messages and docs.
func PerformanceFieldNames() []string {
	names := make([]string, 0, len(PerformanceFields))
	for name := range PerformanceFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
