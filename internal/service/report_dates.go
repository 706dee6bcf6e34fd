package service

import (
	"context"
	"time"

	"fundtracker/internal/config"
	"fundtracker/internal/repository"
)

// ReportDateResolver applies the configured default when a request omits
// report_date. The two sources can disagree when a report was registered
// but its rows failed to import, so the choice is explicit configuration,
// not a guess.
type ReportDateResolver struct {
	Repo   repository.Repository
	Source string
}

// Resolve returns the explicit date unchanged, otherwise the latest date
// from the configured source. A nil result means the store holds no report
// dates at all; callers answer with an empty page in that case.
func (r *ReportDateResolver) Resolve(ctx context.Context, explicit *time.Time) (*time.Time, error) {
	if explicit != nil {
		return explicit, nil
	}
	if r == nil || r.Repo == nil {
		return nil, nil
	}
	if r.Source == config.ReportDateSourceMetadata {
		return r.Repo.LatestMetadataReportDate(ctx)
	}
	return r.Repo.LatestPerformanceReportDate(ctx)
}
