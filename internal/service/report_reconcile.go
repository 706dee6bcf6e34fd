package service

import (
	"context"

	"go.uber.org/zap"

	"fundtracker/internal/models"
	"fundtracker/internal/repository"
)

// ReportReconcileService recomputes per-report totals from the actual
// performance rows and repairs report_metadata entries that drifted, e.g.
// after a manual cleanup pass deleted funds or strategies.
type ReportReconcileService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (s *ReportReconcileService) ReconcileOnce(ctx context.Context) (int, error) {
	reports, err := s.Repo.ListReportMetadata(ctx)
	if err != nil {
		return 0, err
	}
	repaired := 0
	for _, report := range reports {
		if report.ParseStatus != models.ParseStatusCompleted {
			continue
		}
		funds, err := s.Repo.CountFundsForDate(ctx, report.ReportDate.Time())
		if err != nil {
			return repaired, err
		}
		strategies, err := s.Repo.CountStrategiesForDate(ctx, report.ReportDate.Time())
		if err != nil {
			return repaired, err
		}
		if report.TotalFunds != nil && int64(*report.TotalFunds) == funds &&
			report.TotalStrategies != nil && int64(*report.TotalStrategies) == strategies {
			continue
		}
		if err := s.Repo.UpdateReportMetadataTotals(ctx, report.ReportDate.Time(), funds, strategies); err != nil {
			return repaired, err
		}
		repaired++
		if s.Logger != nil {
			s.Logger.Info("report totals reconciled",
				zap.String("report_date", report.ReportDate.String()),
				zap.Int64("total_funds", funds),
				zap.Int64("total_strategies", strategies),
			)
		}
	}
	return repaired, nil
}
