package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fundtracker/internal/config"
	"fundtracker/internal/models"
	"fundtracker/internal/repository"
)

// ReportIngestService imports weekly report documents dropped into the
// configured directory as JSON. One document is one report date; managers,
// strategies and funds are matched to existing dimension rows by their
// natural keys, performance snapshots are appended in a single
// transaction, and the outcome is recorded in report_metadata. Processed
// files are moved aside so a rescan is a no-op.
//
// This is deliberately not the Excel/PDF parsing pipeline; documents are
// expected pre-parsed.
type ReportIngestService struct {
	Repo   repository.Repository
	Logger *zap.Logger
	Config config.IngestConfig
}

type ScanResult struct {
	Files     int
	Imported  int
	Skipped   int
	Failed    int
	Funds     int
	Snapshots int
}

type reportDocument struct {
	ReportDate    string       `json:"report_date"`
	ExcelFilename *string      `json:"excel_filename"`
	PDFFilename   *string      `json:"pdf_filename"`
	Funds         []reportFund `json:"funds"`
}

type reportFund struct {
	FundCode                 string         `json:"fund_code"`
	FundName                 string         `json:"fund_name"`
	ManagerName              string         `json:"manager_name"`
	ManagerEstablishmentDate string         `json:"manager_establishment_date"`
	ManagerCompanySize       string         `json:"manager_company_size"`
	StrategyName             string         `json:"strategy_name"`
	LaunchDate               string         `json:"launch_date"`
	DataSource               string         `json:"data_source"`
	Metrics                  map[string]any `json:"metrics"`
}

// ScanOnce processes every *.json file currently in the ingest directory.
// Per-file failures are recorded and do not stop the scan.
func (s *ReportIngestService) ScanOnce(ctx context.Context) (ScanResult, error) {
	var result ScanResult
	entries, err := os.ReadDir(s.Config.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	result.Files = len(files)

	for _, name := range files {
		path := filepath.Join(s.Config.Dir, name)
		outcome, err := s.ingestFile(ctx, path)
		if err != nil {
			result.Failed++
			if s.Logger != nil {
				s.Logger.Warn("report import failed",
					zap.String("file", name),
					zap.Error(err),
				)
			}
			continue
		}
		if outcome.skipped {
			result.Skipped++
			continue
		}
		result.Imported++
		result.Funds += outcome.funds
		result.Snapshots += outcome.snapshots
		if s.Logger != nil {
			s.Logger.Info("report imported",
				zap.String("file", name),
				zap.String("report_date", outcome.reportDate.Format("2006-01-02")),
				zap.Int("funds", outcome.funds),
				zap.Int("snapshots", outcome.snapshots),
			)
		}
	}
	return result, nil
}

type ingestOutcome struct {
	reportDate time.Time
	funds      int
	snapshots  int
	skipped    bool
}

func (s *ReportIngestService) ingestFile(ctx context.Context, path string) (ingestOutcome, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ingestOutcome{}, err
	}
	doc, err := parseReportDocument(raw)
	if err != nil {
		return ingestOutcome{}, err
	}
	reportDate, err := time.Parse("2006-01-02", doc.ReportDate)
	if err != nil {
		return ingestOutcome{}, fmt.Errorf("report_date %q: %w", doc.ReportDate, err)
	}

	existing, err := s.Repo.GetReportMetadataByDate(ctx, reportDate)
	if err != nil {
		return ingestOutcome{}, err
	}
	if existing != nil && existing.ParseStatus == models.ParseStatusCompleted {
		// Re-running the same report date would violate uk_fund_date anyway.
		if err := s.moveProcessed(path); err != nil {
			return ingestOutcome{}, err
		}
		return ingestOutcome{reportDate: reportDate, skipped: true}, nil
	}

	meta := &models.ReportMetadata{
		ReportDate:    models.NewDate(reportDate),
		ExcelFilename: doc.ExcelFilename,
		PDFFilename:   doc.PDFFilename,
		ParseStatus:   models.ParseStatusPending,
	}
	if err := s.Repo.UpsertReportMetadata(ctx, meta); err != nil {
		return ingestOutcome{}, err
	}

	outcome := ingestOutcome{reportDate: reportDate}
	importErr := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		snapshots := make([]models.FundPerformance, 0, len(doc.Funds))
		managerIDs := map[string]*uint{}
		strategyIDs := map[string]*uint{}
		for i := range doc.Funds {
			row := &doc.Funds[i]
			if row.FundCode == "" {
				return fmt.Errorf("fund %d: missing fund_code", i)
			}

			var managerID *uint
			if row.ManagerName != "" {
				cached, ok := managerIDs[row.ManagerName]
				if !ok {
					manager := &models.Manager{ManagerName: row.ManagerName}
					if date := parseDatePtr(row.ManagerEstablishmentDate); date != nil {
						manager.EstablishmentDate = date
					}
					if row.ManagerCompanySize != "" {
						size := row.ManagerCompanySize
						manager.CompanySize = &size
					}
					if err := s.Repo.UpsertManagerTx(ctx, tx, manager); err != nil {
						return fmt.Errorf("manager %q: %w", row.ManagerName, err)
					}
					cached = &manager.ManagerID
					managerIDs[row.ManagerName] = cached
				}
				managerID = cached
			}

			var strategyID *uint
			if row.StrategyName != "" {
				cached, ok := strategyIDs[row.StrategyName]
				if !ok {
					strategy := models.ClassifyStrategy(row.StrategyName)
					if err := s.Repo.UpsertStrategyTx(ctx, tx, &strategy); err != nil {
						return fmt.Errorf("strategy %q: %w", row.StrategyName, err)
					}
					cached = &strategy.StrategyID
					strategyIDs[row.StrategyName] = cached
				}
				strategyID = cached
			}

			fund := &models.Fund{
				FundCode:   row.FundCode,
				FundName:   row.FundName,
				ManagerID:  managerID,
				StrategyID: strategyID,
				LaunchDate: parseDatePtr(row.LaunchDate),
			}
			if err := s.Repo.UpsertFundTx(ctx, tx, fund); err != nil {
				return fmt.Errorf("fund %q: %w", row.FundCode, err)
			}

			perf, err := buildSnapshot(row, reportDate)
			if err != nil {
				return fmt.Errorf("fund %q: %w", row.FundCode, err)
			}
			snapshots = append(snapshots, perf)
		}
		outcome.funds = len(doc.Funds)
		outcome.snapshots = len(snapshots)
		return s.Repo.InsertPerformancesTx(ctx, tx, snapshots)
	})

	if importErr != nil {
		msg := importErr.Error()
		meta.ParseStatus = models.ParseStatusFailed
		meta.ErrorLog = &msg
		if err := s.Repo.UpsertReportMetadata(ctx, meta); err != nil && s.Logger != nil {
			s.Logger.Warn("record failed import", zap.Error(err))
		}
		return ingestOutcome{}, importErr
	}

	totalFunds := outcome.funds
	totalStrategies := countDistinctStrategies(doc.Funds)
	meta.ParseStatus = models.ParseStatusCompleted
	meta.TotalFunds = &totalFunds
	meta.TotalStrategies = &totalStrategies
	meta.ErrorLog = nil
	if stats, err := json.Marshal(map[string]int{
		"funds":     outcome.funds,
		"snapshots": outcome.snapshots,
	}); err == nil {
		meta.StatsJSON = datatypes.JSON(stats)
	}
	if err := s.Repo.UpsertReportMetadata(ctx, meta); err != nil {
		return ingestOutcome{}, err
	}
	if err := s.moveProcessed(path); err != nil {
		return ingestOutcome{}, err
	}
	return outcome, nil
}

func (s *ReportIngestService) moveProcessed(path string) error {
	dir := s.Config.ProcessedDir
	if dir == "" {
		return os.Remove(path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.Rename(path, filepath.Join(dir, filepath.Base(path)))
}

func parseReportDocument(raw []byte) (reportDocument, error) {
	var doc reportDocument
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return reportDocument{}, err
	}
	if doc.ReportDate == "" {
		return reportDocument{}, fmt.Errorf("missing report_date")
	}
	return doc, nil
}

func buildSnapshot(row *reportFund, reportDate time.Time) (models.FundPerformance, error) {
	perf := models.FundPerformance{
		FundCode:   row.FundCode,
		ReportDate: models.NewDate(reportDate),
		DataSource: row.DataSource,
	}
	if perf.DataSource == "" {
		perf.DataSource = "json"
	}
	for name, raw := range row.Metrics {
		if !models.IsPerformanceField(name) {
			continue
		}
		value, err := NormalizeMetric(raw)
		if err != nil {
			return models.FundPerformance{}, fmt.Errorf("metric %q: %w", name, err)
		}
		perf.SetMetric(name, value)
	}
	return perf, nil
}

// NormalizeMetric coerces a raw JSON metric value into a decimal fraction.
// Numbers pass through unchanged; strings may carry a trailing percent sign
// ("12.34%" -> 0.1234); empty-ish markers mean the metric was not reported.
func NormalizeMetric(raw any) (*decimal.Decimal, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return nil, err
		}
		return &d, nil
	case string:
		s := strings.TrimSpace(v)
		switch strings.ToLower(s) {
		case "", "-", "nan", "none", "nan%":
			return nil, nil
		}
		percent := strings.HasSuffix(s, "%")
		s = strings.TrimSuffix(s, "%")
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		if percent {
			d = d.Div(decimal.NewFromInt(100))
		}
		return &d, nil
	default:
		return nil, fmt.Errorf("unsupported value %v", raw)
	}
}

func parseDatePtr(value string) *models.Date {
	if value == "" {
		return nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return nil
	}
	return &d
}

func countDistinctStrategies(rows []reportFund) int {
	seen := map[string]struct{}{}
	for _, row := range rows {
		if row.StrategyName == "" {
			continue
		}
		seen[row.StrategyName] = struct{}{}
	}
	return len(seen)
}
