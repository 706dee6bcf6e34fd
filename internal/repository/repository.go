package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fundtracker/internal/models"
)

// Repository is the read/write surface over the fund store. All browsing
// operations are read-only projections; the write half exists for the
// report ingest and reconcile jobs only.
type Repository interface {
	// Fund search. Both calls take the same params; Count ignores
	// paging and ordering.
	SearchPerformances(ctx context.Context, params SearchFundsParams) ([]models.FundPerformance, error)
	CountPerformances(ctx context.Context, params SearchFundsParams) (int64, error)

	// Single-fund lookups.
	GetFundByCode(ctx context.Context, code string) (*models.Fund, error)
	GetPerformanceSnapshot(ctx context.Context, code string, reportDate time.Time) (*models.FundPerformance, error)
	ListFundPerformances(ctx context.Context, code string, start, end *time.Time) ([]models.FundPerformance, error)

	// Comparison fetches.
	ListFundsByCodes(ctx context.Context, codes []string) ([]models.Fund, error)
	ListPerformancesByCodes(ctx context.Context, codes []string, start, end *time.Time) ([]models.FundPerformance, error)

	// Report dates.
	LatestPerformanceReportDate(ctx context.Context) (*time.Time, error)
	LatestMetadataReportDate(ctx context.Context) (*time.Time, error)
	ListReportDates(ctx context.Context) ([]time.Time, error)

	// Aggregates.
	SystemStats(ctx context.Context, reportDate *time.Time) (SystemStats, error)
	RankPerformances(ctx context.Context, params RankingParams) ([]models.FundPerformance, error)
	StrategyDistribution(ctx context.Context, reportDate time.Time) ([]StrategyDistributionRow, error)
	ListStrategiesWithCounts(ctx context.Context, reportDate *time.Time) ([]StrategyCountRow, error)

	// Managers.
	ListManagers(ctx context.Context, params ListManagersParams) ([]models.Manager, error)
	CountManagers(ctx context.Context, params ListManagersParams) (int64, error)

	// Ingest writes.
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
	UpsertManagerTx(ctx context.Context, tx *gorm.DB, item *models.Manager) error
	UpsertStrategyTx(ctx context.Context, tx *gorm.DB, item *models.Strategy) error
	UpsertFundTx(ctx context.Context, tx *gorm.DB, item *models.Fund) error
	InsertPerformancesTx(ctx context.Context, tx *gorm.DB, items []models.FundPerformance) error
	UpsertReportMetadata(ctx context.Context, item *models.ReportMetadata) error
	GetReportMetadataByDate(ctx context.Context, reportDate time.Time) (*models.ReportMetadata, error)

	// Reconcile support.
	ListReportMetadata(ctx context.Context) ([]models.ReportMetadata, error)
	CountFundsForDate(ctx context.Context, reportDate time.Time) (int64, error)
	CountStrategiesForDate(ctx context.Context, reportDate time.Time) (int64, error)
	UpdateReportMetadataTotals(ctx context.Context, reportDate time.Time, totalFunds, totalStrategies int64) error
}

// SearchFundsParams filters the fund/performance join for one report date.
// Optional filters are pointers; nil means "not filtered". SortBy must
// already be validated against the metric allow-list by the caller.
type SearchFundsParams struct {
	ReportDate      time.Time
	Keyword         *string
	StrategyID      *uint
	ManagerID       *uint
	MinAnnualReturn *decimal.Decimal
	MaxDrawdown     *decimal.Decimal
	MinSharpe       *decimal.Decimal
	SortBy          string
	Asc             bool
	Limit           int
	Offset          int
}

// RankingParams selects the top funds by one allow-listed metric on one
// report date. Rows with a NULL metric are excluded.
type RankingParams struct {
	ReportDate time.Time
	Metric     string
	StrategyID *uint
	ManagerID  *uint
	Limit      int
}

type ListManagersParams struct {
	Keyword *string
	Limit   int
	Offset  int
}

type SystemStats struct {
	TotalManagers     int64      `json:"total_managers"`
	TotalStrategies   int64      `json:"total_strategies"`
	TotalFunds        int64      `json:"total_funds"`
	TotalPerformances int64      `json:"total_performances"`
	LatestReportDate  *time.Time `json:"-"`
}

type StrategyDistributionRow struct {
	Level1Category string `json:"level1_category"`
	Level2Category string `json:"level2_category"`
	Level3Category string `json:"level3_category"`
	FundCount      int64  `json:"fund_count"`
}

type StrategyCountRow struct {
	StrategyID     uint   `json:"strategy_id"`
	Level1Category string `json:"level1_category"`
	Level2Category string `json:"level2_category"`
	Level3Category string `json:"level3_category"`
	FundCount      int64  `json:"fund_count"`
}
