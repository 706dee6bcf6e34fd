package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fundtracker/internal/models"
	"fundtracker/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// It implements the full interface but only the subset the service tests
// touch has real behavior.
type stubRepo struct {
	funds      map[string]models.Fund
	perfs      []models.FundPerformance
	metadata   map[string]models.ReportMetadata
	managers   map[string]*models.Manager
	strategies map[string]*models.Strategy

	nextManagerID  uint
	nextStrategyID uint

	latestDate        *time.Time
	fundsForDate      map[string]int64
	strategiesForDate map[string]int64
	updatedTotals     map[string][2]int64

	insertErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		funds:             map[string]models.Fund{},
		metadata:          map[string]models.ReportMetadata{},
		managers:          map[string]*models.Manager{},
		strategies:        map[string]*models.Strategy{},
		fundsForDate:      map[string]int64{},
		strategiesForDate: map[string]int64{},
		updatedTotals:     map[string][2]int64{},
	}
}

func (s *stubRepo) SearchPerformances(ctx context.Context, params repository.SearchFundsParams) ([]models.FundPerformance, error) {
	return nil, nil
}

func (s *stubRepo) CountPerformances(ctx context.Context, params repository.SearchFundsParams) (int64, error) {
	return 0, nil
}

func (s *stubRepo) GetFundByCode(ctx context.Context, code string) (*models.Fund, error) {
	if fund, ok := s.funds[code]; ok {
		return &fund, nil
	}
	return nil, nil
}

func (s *stubRepo) GetPerformanceSnapshot(ctx context.Context, code string, reportDate time.Time) (*models.FundPerformance, error) {
	for i := range s.perfs {
		if s.perfs[i].FundCode == code && s.perfs[i].ReportDate.Time().Equal(reportDate) {
			perf := s.perfs[i]
			return &perf, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) ListFundPerformances(ctx context.Context, code string, start, end *time.Time) ([]models.FundPerformance, error) {
	return s.filterPerfs([]string{code}, start, end), nil
}

func (s *stubRepo) ListFundsByCodes(ctx context.Context, codes []string) ([]models.Fund, error) {
	var out []models.Fund
	for _, code := range codes {
		if fund, ok := s.funds[code]; ok {
			out = append(out, fund)
		}
	}
	return out, nil
}

func (s *stubRepo) ListPerformancesByCodes(ctx context.Context, codes []string, start, end *time.Time) ([]models.FundPerformance, error) {
	return s.filterPerfs(codes, start, end), nil
}

func (s *stubRepo) filterPerfs(codes []string, start, end *time.Time) []models.FundPerformance {
	wanted := map[string]struct{}{}
	for _, code := range codes {
		wanted[code] = struct{}{}
	}
	var out []models.FundPerformance
	for _, perf := range s.perfs {
		if _, ok := wanted[perf.FundCode]; !ok {
			continue
		}
		date := perf.ReportDate.Time()
		if start != nil && date.Before(*start) {
			continue
		}
		if end != nil && date.After(*end) {
			continue
		}
		out = append(out, perf)
	}
	return out
}

func (s *stubRepo) LatestPerformanceReportDate(ctx context.Context) (*time.Time, error) {
	return s.latestDate, nil
}

func (s *stubRepo) LatestMetadataReportDate(ctx context.Context) (*time.Time, error) {
	return s.latestDate, nil
}

func (s *stubRepo) ListReportDates(ctx context.Context) ([]time.Time, error) { return nil, nil }

func (s *stubRepo) SystemStats(ctx context.Context, reportDate *time.Time) (repository.SystemStats, error) {
	return repository.SystemStats{}, nil
}

func (s *stubRepo) RankPerformances(ctx context.Context, params repository.RankingParams) ([]models.FundPerformance, error) {
	return nil, nil
}

func (s *stubRepo) StrategyDistribution(ctx context.Context, reportDate time.Time) ([]repository.StrategyDistributionRow, error) {
	return nil, nil
}

func (s *stubRepo) ListStrategiesWithCounts(ctx context.Context, reportDate *time.Time) ([]repository.StrategyCountRow, error) {
	return nil, nil
}

func (s *stubRepo) ListManagers(ctx context.Context, params repository.ListManagersParams) ([]models.Manager, error) {
	return nil, nil
}

func (s *stubRepo) CountManagers(ctx context.Context, params repository.ListManagersParams) (int64, error) {
	return 0, nil
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) UpsertManagerTx(ctx context.Context, tx *gorm.DB, item *models.Manager) error {
	if existing, ok := s.managers[item.ManagerName]; ok {
		item.ManagerID = existing.ManagerID
		return nil
	}
	s.nextManagerID++
	item.ManagerID = s.nextManagerID
	copied := *item
	s.managers[item.ManagerName] = &copied
	return nil
}

func (s *stubRepo) UpsertStrategyTx(ctx context.Context, tx *gorm.DB, item *models.Strategy) error {
	if existing, ok := s.strategies[item.Level3Category]; ok {
		item.StrategyID = existing.StrategyID
		return nil
	}
	s.nextStrategyID++
	item.StrategyID = s.nextStrategyID
	copied := *item
	s.strategies[item.Level3Category] = &copied
	return nil
}

func (s *stubRepo) UpsertFundTx(ctx context.Context, tx *gorm.DB, item *models.Fund) error {
	s.funds[item.FundCode] = *item
	return nil
}

func (s *stubRepo) InsertPerformancesTx(ctx context.Context, tx *gorm.DB, items []models.FundPerformance) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.perfs = append(s.perfs, items...)
	return nil
}

func (s *stubRepo) UpsertReportMetadata(ctx context.Context, item *models.ReportMetadata) error {
	s.metadata[item.ReportDate.String()] = *item
	return nil
}

func (s *stubRepo) GetReportMetadataByDate(ctx context.Context, reportDate time.Time) (*models.ReportMetadata, error) {
	if meta, ok := s.metadata[models.NewDate(reportDate).String()]; ok {
		return &meta, nil
	}
	return nil, nil
}

func (s *stubRepo) ListReportMetadata(ctx context.Context) ([]models.ReportMetadata, error) {
	var out []models.ReportMetadata
	for _, meta := range s.metadata {
		out = append(out, meta)
	}
	return out, nil
}

func (s *stubRepo) CountFundsForDate(ctx context.Context, reportDate time.Time) (int64, error) {
	return s.fundsForDate[models.NewDate(reportDate).String()], nil
}

func (s *stubRepo) CountStrategiesForDate(ctx context.Context, reportDate time.Time) (int64, error) {
	return s.strategiesForDate[models.NewDate(reportDate).String()], nil
}

func (s *stubRepo) UpdateReportMetadataTotals(ctx context.Context, reportDate time.Time, totalFunds, totalStrategies int64) error {
	key := models.NewDate(reportDate).String()
	s.updatedTotals[key] = [2]int64{totalFunds, totalStrategies}
	if meta, ok := s.metadata[key]; ok {
		funds := int(totalFunds)
		strategies := int(totalStrategies)
		meta.TotalFunds = &funds
		meta.TotalStrategies = &strategies
		s.metadata[key] = meta
	}
	return nil
}
