package service

import (
	"context"
	"testing"

	"fundtracker/internal/models"
)

func intPtr(v int) *int { return &v }

func TestReconcileRepairsDriftedTotals(t *testing.T) {
	repo := newStubRepo()
	repo.metadata["2025-06-13"] = models.ReportMetadata{
		ReportDate:      mustDate(t, "2025-06-13"),
		ParseStatus:     models.ParseStatusCompleted,
		TotalFunds:      intPtr(10),
		TotalStrategies: intPtr(4),
	}
	repo.fundsForDate["2025-06-13"] = 8
	repo.strategiesForDate["2025-06-13"] = 3

	svc := &ReportReconcileService{Repo: repo}
	repaired, err := svc.ReconcileOnce(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if repaired != 1 {
		t.Fatalf("repaired=%d want 1", repaired)
	}
	totals, ok := repo.updatedTotals["2025-06-13"]
	if !ok {
		t.Fatalf("totals not updated")
	}
	if totals != [2]int64{8, 3} {
		t.Fatalf("totals=%v", totals)
	}
}

func TestReconcileLeavesMatchingTotals(t *testing.T) {
	repo := newStubRepo()
	repo.metadata["2025-06-13"] = models.ReportMetadata{
		ReportDate:      mustDate(t, "2025-06-13"),
		ParseStatus:     models.ParseStatusCompleted,
		TotalFunds:      intPtr(8),
		TotalStrategies: intPtr(3),
	}
	repo.fundsForDate["2025-06-13"] = 8
	repo.strategiesForDate["2025-06-13"] = 3

	svc := &ReportReconcileService{Repo: repo}
	repaired, err := svc.ReconcileOnce(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if repaired != 0 {
		t.Fatalf("repaired=%d want 0", repaired)
	}
	if len(repo.updatedTotals) != 0 {
		t.Fatalf("no updates expected, got %v", repo.updatedTotals)
	}
}

func TestReconcileIgnoresPendingReports(t *testing.T) {
	repo := newStubRepo()
	repo.metadata["2025-06-13"] = models.ReportMetadata{
		ReportDate:  mustDate(t, "2025-06-13"),
		ParseStatus: models.ParseStatusPending,
	}

	svc := &ReportReconcileService{Repo: repo}
	repaired, err := svc.ReconcileOnce(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if repaired != 0 {
		t.Fatalf("repaired=%d want 0", repaired)
	}
}
