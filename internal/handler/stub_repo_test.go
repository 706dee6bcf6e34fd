package handler

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fundtracker/internal/models"
	"fundtracker/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// Handler tests only exercise the read half; writes are no-ops.
type stubRepo struct {
	funds      map[string]models.Fund
	perfs      []models.FundPerformance
	total      int64
	latestDate *time.Time
	dates      []time.Time
	stats      repository.SystemStats
	rankRows   []models.FundPerformance
	distRows   []repository.StrategyDistributionRow
	countRows  []repository.StrategyCountRow
	managers   []models.Manager

	lastSearch  *repository.SearchFundsParams
	lastRanking *repository.RankingParams
}

func newStubRepo() *stubRepo {
	return &stubRepo{funds: map[string]models.Fund{}}
}

func (s *stubRepo) SearchPerformances(ctx context.Context, params repository.SearchFundsParams) ([]models.FundPerformance, error) {
	s.lastSearch = &params
	return s.perfs, nil
}

func (s *stubRepo) CountPerformances(ctx context.Context, params repository.SearchFundsParams) (int64, error) {
	return s.total, nil
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
	var out []models.FundPerformance
	for _, perf := range s.perfs {
		if perf.FundCode == code {
			out = append(out, perf)
		}
	}
	return out, nil
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
	wanted := map[string]struct{}{}
	for _, code := range codes {
		wanted[code] = struct{}{}
	}
	var out []models.FundPerformance
	for _, perf := range s.perfs {
		if _, ok := wanted[perf.FundCode]; ok {
			out = append(out, perf)
		}
	}
	return out, nil
}

func (s *stubRepo) LatestPerformanceReportDate(ctx context.Context) (*time.Time, error) {
	return s.latestDate, nil
}

func (s *stubRepo) LatestMetadataReportDate(ctx context.Context) (*time.Time, error) {
	return s.latestDate, nil
}

func (s *stubRepo) ListReportDates(ctx context.Context) ([]time.Time, error) {
	return s.dates, nil
}

func (s *stubRepo) SystemStats(ctx context.Context, reportDate *time.Time) (repository.SystemStats, error) {
	return s.stats, nil
}

func (s *stubRepo) RankPerformances(ctx context.Context, params repository.RankingParams) ([]models.FundPerformance, error) {
	s.lastRanking = &params
	return s.rankRows, nil
}

func (s *stubRepo) StrategyDistribution(ctx context.Context, reportDate time.Time) ([]repository.StrategyDistributionRow, error) {
	return s.distRows, nil
}

func (s *stubRepo) ListStrategiesWithCounts(ctx context.Context, reportDate *time.Time) ([]repository.StrategyCountRow, error) {
	return s.countRows, nil
}

func (s *stubRepo) ListManagers(ctx context.Context, params repository.ListManagersParams) ([]models.Manager, error) {
	return s.managers, nil
}

func (s *stubRepo) CountManagers(ctx context.Context, params repository.ListManagersParams) (int64, error) {
	return int64(len(s.managers)), nil
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) UpsertManagerTx(ctx context.Context, tx *gorm.DB, item *models.Manager) error {
	return nil
}

func (s *stubRepo) UpsertStrategyTx(ctx context.Context, tx *gorm.DB, item *models.Strategy) error {
	return nil
}

func (s *stubRepo) UpsertFundTx(ctx context.Context, tx *gorm.DB, item *models.Fund) error {
	return nil
}

func (s *stubRepo) InsertPerformancesTx(ctx context.Context, tx *gorm.DB, items []models.FundPerformance) error {
	return nil
}

func (s *stubRepo) UpsertReportMetadata(ctx context.Context, item *models.ReportMetadata) error {
	return nil
}

func (s *stubRepo) GetReportMetadataByDate(ctx context.Context, reportDate time.Time) (*models.ReportMetadata, error) {
	return nil, nil
}

func (s *stubRepo) ListReportMetadata(ctx context.Context) ([]models.ReportMetadata, error) {
	return nil, nil
}

func (s *stubRepo) CountFundsForDate(ctx context.Context, reportDate time.Time) (int64, error) {
	return 0, nil
}

func (s *stubRepo) CountStrategiesForDate(ctx context.Context, reportDate time.Time) (int64, error) {
	return 0, nil
}

func (s *stubRepo) UpdateReportMetadataTotals(ctx context.Context, reportDate time.Time, totalFunds, totalStrategies int64) error {
	return nil
}
