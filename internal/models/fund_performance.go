package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundPerformance is one weekly performance snapshot for one fund. All
// rate/ratio metrics are decimal fractions (0.1234 == 12.34%). The
// (fund_code, report_date) pair is unique: at most one snapshot per fund
// per reporting period.
type FundPerformance struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	FundCode   string `gorm:"type:varchar(50);not null;uniqueIndex:uk_fund_date,priority:1" json:"fund_code"`
	ReportDate Date   `gorm:"type:date;not null;uniqueIndex:uk_fund_date,priority:2;index:idx_report_date" json:"report_date"`
	DataSource string `gorm:"type:varchar(20);not null;default:'json'" json:"data_source"`

	Fund *Fund `gorm:"foreignKey:FundCode;references:FundCode;constraint:OnDelete:CASCADE" json:"-"`

	// Trailing-window returns and excess returns.
	WeeklyExcess          *decimal.Decimal `gorm:"type:numeric(10,6)" json:"weekly_excess"`
	WeeklyReturn          *decimal.Decimal `gorm:"type:numeric(10,6)" json:"weekly_return"`
	MonthlyExcess         *decimal.Decimal `gorm:"type:numeric(10,6)" json:"monthly_excess"`
	MonthlyReturn         *decimal.Decimal `gorm:"type:numeric(10,6)" json:"monthly_return"`
	MonthlyMaxDrawdown    *decimal.Decimal `gorm:"type:numeric(10,6)" json:"monthly_max_drawdown"`
	QuarterlyExcess       *decimal.Decimal `gorm:"type:numeric(10,6)" json:"quarterly_excess"`
	QuarterlyReturn       *decimal.Decimal `gorm:"type:numeric(10,6)" json:"quarterly_return"`
	QuarterlyMaxDrawdown  *decimal.Decimal `gorm:"type:numeric(10,6)" json:"quarterly_max_drawdown"`
	SemiAnnualExcess      *decimal.Decimal `gorm:"type:numeric(10,6)" json:"semi_annual_excess"`
	SemiAnnualReturn      *decimal.Decimal `gorm:"type:numeric(10,6)" json:"semi_annual_return"`
	SemiAnnualMaxDrawdown *decimal.Decimal `gorm:"type:numeric(10,6)" json:"semi_annual_max_drawdown"`
	AnnualExcess          *decimal.Decimal `gorm:"type:numeric(10,6)" json:"annual_excess"`
	AnnualReturnYTD       *decimal.Decimal `gorm:"type:numeric(10,6)" json:"annual_return_ytd"`
	AnnualMaxDrawdown     *decimal.Decimal `gorm:"type:numeric(10,6)" json:"annual_max_drawdown"`
	YTDExcess             *decimal.Decimal `gorm:"type:numeric(10,6)" json:"ytd_excess"`
	YTDReturn             *decimal.Decimal `gorm:"type:numeric(10,6)" json:"ytd_return"`
	YTDMaxDrawdown        *decimal.Decimal `gorm:"type:numeric(10,6)" json:"ytd_max_drawdown"`

	// Since-inception figures.
	AnnualReturn     *decimal.Decimal `gorm:"type:numeric(10,6);index:idx_annual_return" json:"annual_return"`
	CumulativeReturn *decimal.Decimal `gorm:"type:numeric(12,6);index:idx_cumulative_return" json:"cumulative_return"`
	MaxDrawdown      *decimal.Decimal `gorm:"type:numeric(10,6)" json:"max_drawdown"`
	AnnualVolatility *decimal.Decimal `gorm:"type:numeric(10,6)" json:"annual_volatility"`

	// Risk-adjusted ratios, trailing-year and since-inception.
	AnnualSharpe     *decimal.Decimal `gorm:"type:numeric(8,4)" json:"annual_sharpe"`
	AnnualCalmar     *decimal.Decimal `gorm:"type:numeric(8,4)" json:"annual_calmar"`
	AnnualSortino    *decimal.Decimal `gorm:"type:numeric(8,4)" json:"annual_sortino"`
	InceptionSharpe  *decimal.Decimal `gorm:"type:numeric(8,4)" json:"inception_sharpe"`
	InceptionCalmar  *decimal.Decimal `gorm:"type:numeric(8,4)" json:"inception_calmar"`
	InceptionSortino *decimal.Decimal `gorm:"type:numeric(8,4)" json:"inception_sortino"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (FundPerformance) TableName() string {
	return "fund_performance"
}

// Metric returns the named metric column, or nil for names outside the
// allow-list. Field names match the JSON/database column names.
func (p *FundPerformance) Metric(name string) *decimal.Decimal {
	if p == nil {
		return nil
	}
	switch name {
	case "weekly_excess":
		return p.WeeklyExcess
	case "weekly_return":
		return p.WeeklyReturn
	case "monthly_excess":
		return p.MonthlyExcess
	case "monthly_return":
		return p.MonthlyReturn
	case "monthly_max_drawdown":
		return p.MonthlyMaxDrawdown
	case "quarterly_excess":
		return p.QuarterlyExcess
	case "quarterly_return":
		return p.QuarterlyReturn
	case "quarterly_max_drawdown":
		return p.QuarterlyMaxDrawdown
	case "semi_annual_excess":
		return p.SemiAnnualExcess
	case "semi_annual_return":
		return p.SemiAnnualReturn
	case "semi_annual_max_drawdown":
		return p.SemiAnnualMaxDrawdown
	case "annual_excess":
		return p.AnnualExcess
	case "annual_return_ytd":
		return p.AnnualReturnYTD
	case "annual_max_drawdown":
		return p.AnnualMaxDrawdown
	case "ytd_excess":
		return p.YTDExcess
	case "ytd_return":
		return p.YTDReturn
	case "ytd_max_drawdown":
		return p.YTDMaxDrawdown
	case "annual_return":
		return p.AnnualReturn
	case "cumulative_return":
		return p.CumulativeReturn
	case "max_drawdown":
		return p.MaxDrawdown
	case "annual_volatility":
		return p.AnnualVolatility
	case "annual_sharpe":
		return p.AnnualSharpe
	case "annual_calmar":
		return p.AnnualCalmar
	case "annual_sortino":
		return p.AnnualSortino
	case "inception_sharpe":
		return p.InceptionSharpe
	case "inception_calmar":
		return p.InceptionCalmar
	case "inception_sortino":
		return p.InceptionSortino
	}
	return nil
}

// SetMetric assigns the named metric column. It reports false for names
// outside the allow-list.
func (p *FundPerformance) SetMetric(name string, value *decimal.Decimal) bool {
	if p == nil {
		return false
	}
	switch name {
	case "weekly_excess":
		p.WeeklyExcess = value
	case "weekly_return":
		p.WeeklyReturn = value
	case "monthly_excess":
		p.MonthlyExcess = value
	case "monthly_return":
		p.MonthlyReturn = value
	case "monthly_max_drawdown":
		p.MonthlyMaxDrawdown = value
	case "quarterly_excess":
		p.QuarterlyExcess = value
	case "quarterly_return":
		p.QuarterlyReturn = value
	case "quarterly_max_drawdown":
		p.QuarterlyMaxDrawdown = value
	case "semi_annual_excess":
		p.SemiAnnualExcess = value
	case "semi_annual_return":
		p.SemiAnnualReturn = value
	case "semi_annual_max_drawdown":
		p.SemiAnnualMaxDrawdown = value
	case "annual_excess":
		p.AnnualExcess = value
	case "annual_return_ytd":
		p.AnnualReturnYTD = value
	case "annual_max_drawdown":
		p.AnnualMaxDrawdown = value
	case "ytd_excess":
		p.YTDExcess = value
	case "ytd_return":
		p.YTDReturn = value
	case "ytd_max_drawdown":
		p.YTDMaxDrawdown = value
	case "annual_return":
		p.AnnualReturn = value
	case "cumulative_return":
		p.CumulativeReturn = value
	case "max_drawdown":
		p.MaxDrawdown = value
	case "annual_volatility":
		p.AnnualVolatility = value
	case "annual_sharpe":
		p.AnnualSharpe = value
	case "annual_calmar":
		p.AnnualCalmar = value
	case "annual_sortino":
		p.AnnualSortino = value
	case "inception_sharpe":
		p.InceptionSharpe = value
	case "inception_calmar":
		p.InceptionCalmar = value
	case "inception_sortino":
		p.InceptionSortino = value
	default:
		return false
	}
	return true
}
