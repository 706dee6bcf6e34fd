package models

import (
	"time"
)

// Strategy is a three-level classification applied to a fund. The level-3
// name is the finest bucket (one sheet per level-3 name in the source
// reports) and is unique across the table.
type Strategy struct {
	StrategyID     uint   `gorm:"primaryKey;autoIncrement" json:"strategy_id"`
	Level3Category string `gorm:"type:varchar(100);uniqueIndex;not null" json:"level3_category"`
	Level2Category string `gorm:"type:varchar(100);not null;index:idx_level2" json:"level2_category"`
	Level1Category string `gorm:"type:varchar(100);not null;index:idx_level1" json:"level1_category"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Strategy) TableName() string {
	return "strategies"
}
