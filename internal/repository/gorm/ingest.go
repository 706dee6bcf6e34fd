package gormrepository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fundtracker/internal/models"
)

// Dimension upserts match on the natural key (name / level-3 name / fund
// code) and only overwrite attributes the incoming row actually carries, so
// a sparse later report cannot blank out fields a richer earlier report set.

func (s *Store) UpsertManagerTx(ctx context.Context, tx *gorm.DB, item *models.Manager) error {
	if s == nil || item == nil || item.ManagerName == "" {
		return nil
	}
	if tx == nil {
		tx = s.db.WithContext(ctx)
	}
	var existing models.Manager
	err := tx.Where("manager_name = ?", item.ManagerName).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(item).Error
	}
	if err != nil {
		return err
	}
	item.ManagerID = existing.ManagerID
	updates := map[string]any{}
	if item.EstablishmentDate != nil {
		updates["establishment_date"] = *item.EstablishmentDate
	}
	if item.CompanySize != nil {
		updates["company_size"] = *item.CompanySize
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.Model(&models.Manager{}).
		Where("manager_id = ?", existing.ManagerID).
		Updates(updates).Error
}

func (s *Store) UpsertStrategyTx(ctx context.Context, tx *gorm.DB, item *models.Strategy) error {
	if s == nil || item == nil || item.Level3Category == "" {
		return nil
	}
	if tx == nil {
		tx = s.db.WithContext(ctx)
	}
	var existing models.Strategy
	err := tx.Where("level3_category = ?", item.Level3Category).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(item).Error
	}
	if err != nil {
		return err
	}
	item.StrategyID = existing.StrategyID
	if existing.Level1Category == item.Level1Category && existing.Level2Category == item.Level2Category {
		return nil
	}
	return tx.Model(&models.Strategy{}).
		Where("strategy_id = ?", existing.StrategyID).
		Updates(map[string]any{
			"level1_category": item.Level1Category,
			"level2_category": item.Level2Category,
		}).Error
}

func (s *Store) UpsertFundTx(ctx context.Context, tx *gorm.DB, item *models.Fund) error {
	if s == nil || item == nil || item.FundCode == "" {
		return nil
	}
	if tx == nil {
		tx = s.db.WithContext(ctx)
	}
	var existing models.Fund
	err := tx.Where("fund_code = ?", item.FundCode).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(item).Error
	}
	if err != nil {
		return err
	}
	updates := map[string]any{}
	if item.FundName != "" && item.FundName != existing.FundName {
		updates["fund_name"] = item.FundName
	}
	if item.ManagerID != nil {
		updates["manager_id"] = *item.ManagerID
	}
	if item.StrategyID != nil {
		updates["strategy_id"] = *item.StrategyID
	}
	if item.LaunchDate != nil {
		updates["launch_date"] = *item.LaunchDate
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.Model(&models.Fund{}).
		Where("fund_code = ?", item.FundCode).
		Updates(updates).Error
}

// InsertPerformancesTx appends snapshots. A duplicate (fund_code,
// report_date) pair violates uk_fund_date and fails the whole batch; the
// ingest job treats that as a report-level failure.
func (s *Store) InsertPerformancesTx(ctx context.Context, tx *gorm.DB, items []models.FundPerformance) error {
	if s == nil || len(items) == 0 {
		return nil
	}
	if tx == nil {
		tx = s.db.WithContext(ctx)
	}
	return tx.CreateInBatches(items, 200).Error
}

func (s *Store) UpsertReportMetadata(ctx context.Context, item *models.ReportMetadata) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "report_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"excel_filename",
			"pdf_filename",
			"total_funds",
			"total_strategies",
			"parse_status",
			"error_log",
			"stats_json",
		}),
	}).Create(item).Error
}

func (s *Store) GetReportMetadataByDate(ctx context.Context, reportDate time.Time) (*models.ReportMetadata, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.ReportMetadata
	err := s.db.WithContext(ctx).Where("report_date = ?", reportDate).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListReportMetadata(ctx context.Context) ([]models.ReportMetadata, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.ReportMetadata
	err := s.db.WithContext(ctx).
		Model(&models.ReportMetadata{}).
		Order("report_date DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountFundsForDate(ctx context.Context, reportDate time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.FundPerformance{}).
		Where("report_date = ?", reportDate).
		Distinct("fund_code").
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) CountStrategiesForDate(ctx context.Context, reportDate time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.FundPerformance{}).
		Joins("JOIN funds ON funds.fund_code = fund_performance.fund_code").
		Where("fund_performance.report_date = ?", reportDate).
		Where("funds.strategy_id IS NOT NULL").
		Distinct("funds.strategy_id").
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) UpdateReportMetadataTotals(ctx context.Context, reportDate time.Time, totalFunds, totalStrategies int64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.ReportMetadata{}).
		Where("report_date = ?", reportDate).
		Updates(map[string]any{
			"total_funds":      totalFunds,
			"total_strategies": totalStrategies,
		}).Error
}
