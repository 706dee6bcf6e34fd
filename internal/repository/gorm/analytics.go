package gormrepository

import (
	"context"
	"time"

	"fundtracker/internal/models"
	"fundtracker/internal/repository"
)

func (s *Store) SystemStats(ctx context.Context, reportDate *time.Time) (repository.SystemStats, error) {
	if s == nil || s.db == nil {
		return repository.SystemStats{}, nil
	}
	var stats repository.SystemStats
	if err := s.db.WithContext(ctx).Model(&models.Manager{}).Count(&stats.TotalManagers).Error; err != nil {
		return repository.SystemStats{}, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Strategy{}).Count(&stats.TotalStrategies).Error; err != nil {
		return repository.SystemStats{}, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Fund{}).Count(&stats.TotalFunds).Error; err != nil {
		return repository.SystemStats{}, err
	}
	perfQuery := s.db.WithContext(ctx).Model(&models.FundPerformance{})
	if reportDate != nil {
		perfQuery = perfQuery.Where("report_date = ?", *reportDate)
	}
	if err := perfQuery.Count(&stats.TotalPerformances).Error; err != nil {
		return repository.SystemStats{}, err
	}
	latest, err := s.LatestPerformanceReportDate(ctx)
	if err != nil {
		return repository.SystemStats{}, err
	}
	stats.LatestReportDate = latest
	return stats, nil
}

func (s *Store) RankPerformances(ctx context.Context, params repository.RankingParams) ([]models.FundPerformance, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	metric := params.Metric
	if !models.IsPerformanceField(metric) {
		metric = "annual_return"
	}
	query := s.db.WithContext(ctx).
		Model(&models.FundPerformance{}).
		Joins("JOIN funds ON funds.fund_code = fund_performance.fund_code").
		Where("fund_performance.report_date = ?", params.ReportDate).
		Where("fund_performance." + metric + " IS NOT NULL")
	if params.StrategyID != nil {
		query = query.Where("funds.strategy_id = ?", *params.StrategyID)
	}
	if params.ManagerID != nil {
		query = query.Where("funds.manager_id = ?", *params.ManagerID)
	}
	// Smaller drawdowns are better; everything else ranks high-to-low.
	// Fund code breaks ties so rankings are deterministic.
	direction := "DESC"
	if models.IsDrawdownField(metric) {
		direction = "ASC"
	}
	query = query.Order("fund_performance." + metric + " " + direction + ", fund_performance.fund_code ASC")
	limit := params.Limit
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	var items []models.FundPerformance
	if err := query.Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) StrategyDistribution(ctx context.Context, reportDate time.Time) ([]repository.StrategyDistributionRow, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var rows []repository.StrategyDistributionRow
	err := s.db.WithContext(ctx).
		Table("strategies").
		Select(`
			strategies.level1_category AS level1_category,
			strategies.level2_category AS level2_category,
			strategies.level3_category AS level3_category,
			COUNT(DISTINCT fund_performance.fund_code) AS fund_count
		`).
		Joins("LEFT JOIN funds ON funds.strategy_id = strategies.strategy_id").
		Joins("LEFT JOIN fund_performance ON fund_performance.fund_code = funds.fund_code AND fund_performance.report_date = ?", reportDate).
		Group("strategies.strategy_id").
		Order("fund_count DESC, strategies.level3_category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) ListStrategiesWithCounts(ctx context.Context, reportDate *time.Time) ([]repository.StrategyCountRow, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).
		Table("strategies").
		Select(`
			strategies.strategy_id AS strategy_id,
			strategies.level1_category AS level1_category,
			strategies.level2_category AS level2_category,
			strategies.level3_category AS level3_category,
			COUNT(DISTINCT fund_performance.fund_code) AS fund_count
		`).
		Joins("LEFT JOIN funds ON funds.strategy_id = strategies.strategy_id")
	if reportDate != nil {
		query = query.Joins("LEFT JOIN fund_performance ON fund_performance.fund_code = funds.fund_code AND fund_performance.report_date = ?", *reportDate)
	} else {
		query = query.Joins("LEFT JOIN fund_performance ON fund_performance.fund_code = funds.fund_code")
	}
	var rows []repository.StrategyCountRow
	err := query.
		Group("strategies.strategy_id").
		Order("strategies.level1_category ASC, strategies.level2_category ASC, strategies.level3_category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) ListManagers(ctx context.Context, params repository.ListManagersParams) ([]models.Manager, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Manager{})
	if params.Keyword != nil && *params.Keyword != "" {
		query = query.Where("manager_name ILIKE ?", "%"+*params.Keyword+"%")
	}
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.Manager
	if err := query.Order("manager_name ASC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountManagers(ctx context.Context, params repository.ListManagersParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Manager{})
	if params.Keyword != nil && *params.Keyword != "" {
		query = query.Where("manager_name ILIKE ?", "%"+*params.Keyword+"%")
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
