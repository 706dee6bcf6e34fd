package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fundtracker/internal/config"
	"fundtracker/internal/models"
)

func TestNormalizeMetricNumbers(t *testing.T) {
	got, err := NormalizeMetric(json.Number("0.1234"))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if got == nil || got.String() != "0.1234" {
		t.Fatalf("got %v", got)
	}
}

func TestNormalizeMetricPercentStrings(t *testing.T) {
	got, err := NormalizeMetric("12.34%")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if got == nil || got.String() != "0.1234" {
		t.Fatalf("got %v want 0.1234", got)
	}
	got, err = NormalizeMetric("-5%")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if got == nil || got.String() != "-0.05" {
		t.Fatalf("got %v want -0.05", got)
	}
	got, err = NormalizeMetric("0.42")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if got == nil || got.String() != "0.42" {
		t.Fatalf("got %v want 0.42", got)
	}
}

func TestNormalizeMetricEmptyMarkers(t *testing.T) {
	for _, raw := range []any{nil, "", "-", "nan", "NaN%", "None", " "} {
		got, err := NormalizeMetric(raw)
		if err != nil {
			t.Fatalf("%v: err=%v", raw, err)
		}
		if got != nil {
			t.Fatalf("%v: got %v want nil", raw, got)
		}
	}
}

func TestNormalizeMetricRejectsGarbage(t *testing.T) {
	if _, err := NormalizeMetric("abc"); err == nil {
		t.Fatalf("expected error for non-numeric string")
	}
	if _, err := NormalizeMetric(true); err == nil {
		t.Fatalf("expected error for bool")
	}
}

func writeReport(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

const sampleReport = `{
  "report_date": "2025-06-13",
  "excel_filename": "weekly-2025-06-13.xlsx",
  "funds": [
    {
      "fund_code": "F001",
      "fund_name": "Ridge Peak 500 Enhanced",
      "manager_name": "Ridge Peak Asset",
      "manager_establishment_date": "2015-03-01",
      "strategy_name": "enhanced-500",
      "launch_date": "2020-01-10",
      "metrics": {"annual_return": "12.34%", "max_drawdown": -0.08, "annual_sharpe": 1.5}
    },
    {
      "fund_code": "F002",
      "fund_name": "Quiet Water Neutral",
      "manager_name": "Quiet Water Capital",
      "strategy_name": "market-neutral",
      "metrics": {"annual_return": 0.05, "weekly_return": "nan"}
    }
  ]
}`

func newIngest(t *testing.T, repo *stubRepo) (*ReportIngestService, string, string) {
	t.Helper()
	dir := t.TempDir()
	processed := t.TempDir()
	svc := &ReportIngestService{
		Repo: repo,
		Config: config.IngestConfig{
			Enabled:      true,
			Dir:          dir,
			ProcessedDir: processed,
		},
	}
	return svc, dir, processed
}

func TestIngestImportsReport(t *testing.T) {
	repo := newStubRepo()
	svc, dir, processed := newIngest(t, repo)
	writeReport(t, dir, "weekly.json", sampleReport)

	result, err := svc.ScanOnce(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if result.Imported != 1 || result.Failed != 0 || result.Skipped != 0 {
		t.Fatalf("result=%+v", result)
	}
	if result.Funds != 2 || result.Snapshots != 2 {
		t.Fatalf("result=%+v", result)
	}

	if len(repo.perfs) != 2 {
		t.Fatalf("perfs=%d want 2", len(repo.perfs))
	}
	first := repo.perfs[0]
	if first.FundCode != "F001" || first.ReportDate.String() != "2025-06-13" {
		t.Fatalf("perf=%+v", first)
	}
	if first.AnnualReturn == nil || first.AnnualReturn.String() != "0.1234" {
		t.Fatalf("annual_return=%v want 0.1234", first.AnnualReturn)
	}
	if repo.perfs[1].WeeklyReturn != nil {
		t.Fatalf("nan metric should stay nil")
	}

	fund, ok := repo.funds["F001"]
	if !ok {
		t.Fatalf("fund F001 not upserted")
	}
	if fund.ManagerID == nil || fund.StrategyID == nil {
		t.Fatalf("fund dimensions not linked: %+v", fund)
	}
	if fund.LaunchDate == nil || fund.LaunchDate.String() != "2020-01-10" {
		t.Fatalf("launch_date=%v", fund.LaunchDate)
	}
	strategy := repo.strategies["enhanced-500"]
	if strategy == nil || strategy.Level1Category != "equity" {
		t.Fatalf("strategy not classified: %+v", strategy)
	}

	meta, ok := repo.metadata["2025-06-13"]
	if !ok {
		t.Fatalf("metadata not recorded")
	}
	if meta.ParseStatus != models.ParseStatusCompleted {
		t.Fatalf("status=%q", meta.ParseStatus)
	}
	if meta.TotalFunds == nil || *meta.TotalFunds != 2 {
		t.Fatalf("total_funds=%v", meta.TotalFunds)
	}
	if meta.TotalStrategies == nil || *meta.TotalStrategies != 2 {
		t.Fatalf("total_strategies=%v", meta.TotalStrategies)
	}
	if meta.ExcelFilename == nil || *meta.ExcelFilename != "weekly-2025-06-13.xlsx" {
		t.Fatalf("excel_filename=%v", meta.ExcelFilename)
	}

	if _, err := os.Stat(filepath.Join(dir, "weekly.json")); !os.IsNotExist(err) {
		t.Fatalf("source file should be moved away")
	}
	if _, err := os.Stat(filepath.Join(processed, "weekly.json")); err != nil {
		t.Fatalf("processed copy missing: %v", err)
	}
}

func TestIngestSkipsCompletedReport(t *testing.T) {
	repo := newStubRepo()
	repo.metadata["2025-06-13"] = models.ReportMetadata{
		ReportDate:  mustDate(t, "2025-06-13"),
		ParseStatus: models.ParseStatusCompleted,
	}
	svc, dir, _ := newIngest(t, repo)
	writeReport(t, dir, "weekly.json", sampleReport)

	result, err := svc.ScanOnce(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if result.Skipped != 1 || result.Imported != 0 {
		t.Fatalf("result=%+v", result)
	}
	if len(repo.perfs) != 0 {
		t.Fatalf("no snapshots should be written on skip")
	}
	if _, err := os.Stat(filepath.Join(dir, "weekly.json")); !os.IsNotExist(err) {
		t.Fatalf("skipped file should still be moved away")
	}
}

func TestIngestRecordsFailure(t *testing.T) {
	repo := newStubRepo()
	svc, dir, _ := newIngest(t, repo)
	writeReport(t, dir, "broken.json", `{
  "report_date": "2025-06-13",
  "funds": [
    {"fund_code": "F001", "fund_name": "Broken", "metrics": {"annual_return": "abc"}}
  ]
}`)

	result, err := svc.ScanOnce(context.Background())
	if err != nil {
		t.Fatalf("scan itself should not fail: %v", err)
	}
	if result.Failed != 1 || result.Imported != 0 {
		t.Fatalf("result=%+v", result)
	}
	meta, ok := repo.metadata["2025-06-13"]
	if !ok {
		t.Fatalf("failed import should still record metadata")
	}
	if meta.ParseStatus != models.ParseStatusFailed {
		t.Fatalf("status=%q", meta.ParseStatus)
	}
	if meta.ErrorLog == nil || *meta.ErrorLog == "" {
		t.Fatalf("error_log should carry the failure")
	}
	if _, err := os.Stat(filepath.Join(dir, "broken.json")); err != nil {
		t.Fatalf("failed file should stay for inspection: %v", err)
	}
}

func TestIngestMissingDirIsNoop(t *testing.T) {
	svc := &ReportIngestService{
		Repo:   newStubRepo(),
		Config: config.IngestConfig{Dir: filepath.Join(t.TempDir(), "missing")},
	}
	result, err := svc.ScanOnce(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if result.Files != 0 {
		t.Fatalf("result=%+v", result)
	}
}
