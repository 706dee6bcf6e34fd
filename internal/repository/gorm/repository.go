package gormrepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"fundtracker/internal/models"
	"fundtracker/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- Fund search ------------------------------------------------------------

func (s *Store) searchQuery(ctx context.Context, params repository.SearchFundsParams) *gorm.DB {
	query := s.db.WithContext(ctx).
		Model(&models.FundPerformance{}).
		Joins("JOIN funds ON funds.fund_code = fund_performance.fund_code").
		Joins("LEFT JOIN managers ON managers.manager_id = funds.manager_id").
		Where("fund_performance.report_date = ?", params.ReportDate)
	if params.Keyword != nil && *params.Keyword != "" {
		pattern := "%" + *params.Keyword + "%"
		query = query.Where(
			"funds.fund_name ILIKE ? OR managers.manager_name ILIKE ? OR funds.fund_code ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if params.StrategyID != nil {
		query = query.Where("funds.strategy_id = ?", *params.StrategyID)
	}
	if params.ManagerID != nil {
		query = query.Where("funds.manager_id = ?", *params.ManagerID)
	}
	if params.MinAnnualReturn != nil {
		query = query.Where("fund_performance.annual_return >= ?", *params.MinAnnualReturn)
	}
	if params.MaxDrawdown != nil {
		// Works whether the source stored drawdowns signed or as magnitudes.
		query = query.Where("ABS(fund_performance.max_drawdown) <= ?", params.MaxDrawdown.Abs())
	}
	if params.MinSharpe != nil {
		query = query.Where("fund_performance.annual_sharpe >= ?", *params.MinSharpe)
	}
	return query
}

func (s *Store) SearchPerformances(ctx context.Context, params repository.SearchFundsParams) ([]models.FundPerformance, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	column := params.SortBy
	if !models.IsPerformanceField(column) {
		column = "annual_return"
	}
	direction := "DESC"
	if params.Asc {
		direction = "ASC"
	}
	query := s.searchQuery(ctx, params).
		Order("fund_performance." + column + " " + direction + " NULLS LAST, fund_performance.fund_code ASC")
	limit := normalizeLimit(params.Limit, 20)
	offset := normalizeOffset(params.Offset)
	var items []models.FundPerformance
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountPerformances(ctx context.Context, params repository.SearchFundsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.searchQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// --- Single-fund lookups ----------------------------------------------------

func (s *Store) GetFundByCode(ctx context.Context, code string) (*models.Fund, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Fund
	err := s.db.WithContext(ctx).
		Preload("Manager").
		Preload("Strategy").
		Where("fund_code = ?", code).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetPerformanceSnapshot(ctx context.Context, code string, reportDate time.Time) (*models.FundPerformance, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.FundPerformance
	err := s.db.WithContext(ctx).
		Where("fund_code = ?", code).
		Where("report_date = ?", reportDate).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListFundPerformances(ctx context.Context, code string, start, end *time.Time) ([]models.FundPerformance, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).
		Model(&models.FundPerformance{}).
		Where("fund_code = ?", code)
	if start != nil {
		query = query.Where("report_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("report_date <= ?", *end)
	}
	var items []models.FundPerformance
	if err := query.Order("report_date ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Comparison fetches -----------------------------------------------------

func (s *Store) ListFundsByCodes(ctx context.Context, codes []string) ([]models.Fund, error) {
	if s == nil || s.db == nil || len(codes) == 0 {
		return nil, nil
	}
	var items []models.Fund
	err := s.db.WithContext(ctx).
		Preload("Manager").
		Preload("Strategy").
		Where("fund_code IN ?", codes).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListPerformancesByCodes(ctx context.Context, codes []string, start, end *time.Time) ([]models.FundPerformance, error) {
	if s == nil || s.db == nil || len(codes) == 0 {
		return nil, nil
	}
	query := s.db.WithContext(ctx).
		Model(&models.FundPerformance{}).
		Where("fund_code IN ?", codes)
	if start != nil {
		query = query.Where("report_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("report_date <= ?", *end)
	}
	var items []models.FundPerformance
	if err := query.Order("fund_code ASC, report_date ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Report dates -----------------------------------------------------------

func (s *Store) LatestPerformanceReportDate(ctx context.Context) (*time.Time, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return s.latestDate(ctx, s.db.WithContext(ctx).Model(&models.FundPerformance{}))
}

func (s *Store) LatestMetadataReportDate(ctx context.Context) (*time.Time, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return s.latestDate(ctx, s.db.WithContext(ctx).Model(&models.ReportMetadata{}))
}

func (s *Store) latestDate(_ context.Context, query *gorm.DB) (*time.Time, error) {
	var row struct {
		Latest sql.NullTime
	}
	if err := query.Select("MAX(report_date) AS latest").Scan(&row).Error; err != nil {
		return nil, err
	}
	if !row.Latest.Valid {
		return nil, nil
	}
	latest := row.Latest.Time
	return &latest, nil
}

func (s *Store) ListReportDates(ctx context.Context) ([]time.Time, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var dates []time.Time
	err := s.db.WithContext(ctx).
		Model(&models.FundPerformance{}).
		Select("DISTINCT report_date").
		Order("report_date DESC").
		Pluck("report_date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

// --- shared helpers ---------------------------------------------------------

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
