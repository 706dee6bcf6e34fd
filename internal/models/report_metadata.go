package models

import (
	"time"

	"gorm.io/datatypes"
)

// Parse status values for ReportMetadata.
const (
	ParseStatusPending   = "pending"
	ParseStatusCompleted = "completed"
	ParseStatusFailed    = "failed"
)

// ReportMetadata describes one ingested weekly report: where it came from,
// how big it was, and whether the import succeeded. One row per report date.
type ReportMetadata struct {
	ReportID        uint           `gorm:"primaryKey;autoIncrement" json:"report_id"`
	ReportDate      Date           `gorm:"type:date;uniqueIndex;not null" json:"report_date"`
	ExcelFilename   *string        `gorm:"type:varchar(300)" json:"excel_filename,omitempty"`
	PDFFilename     *string        `gorm:"type:varchar(300)" json:"pdf_filename,omitempty"`
	TotalFunds      *int           `json:"total_funds,omitempty"`
	TotalStrategies *int           `json:"total_strategies,omitempty"`
	ParseStatus     string         `gorm:"type:varchar(20);not null;default:'pending'" json:"parse_status"`
	ErrorLog        *string        `gorm:"type:text" json:"error_log,omitempty"`
	StatsJSON       datatypes.JSON `gorm:"type:jsonb" json:"stats,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (ReportMetadata) TableName() string {
	return "report_metadata"
}
