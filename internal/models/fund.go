package models

import (
	"time"
)

// Fund is a single private-fund product. The code is the stable identity
// across weekly reports; name, manager and strategy may be corrected by a
// later import.
type Fund struct {
	FundCode   string `gorm:"primaryKey;type:varchar(50)" json:"fund_code"`
	FundName   string `gorm:"type:varchar(300);not null;index:idx_fund_name" json:"fund_name"`
	ManagerID  *uint  `gorm:"index:idx_fund_manager" json:"manager_id,omitempty"`
	StrategyID *uint  `gorm:"index:idx_fund_strategy" json:"strategy_id,omitempty"`
	LaunchDate *Date  `gorm:"type:date" json:"launch_date,omitempty"`

	Manager  *Manager  `gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL" json:"-"`
	Strategy *Strategy `gorm:"foreignKey:StrategyID;constraint:OnDelete:SET NULL" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Fund) TableName() string {
	return "funds"
}
