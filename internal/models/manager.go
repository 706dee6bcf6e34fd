package models

import (
	"time"
)

// Manager is the asset-management company that runs one or more funds.
type Manager struct {
	ManagerID         uint    `gorm:"primaryKey;autoIncrement" json:"manager_id"`
	ManagerName       string  `gorm:"type:varchar(200);uniqueIndex;not null" json:"manager_name"`
	EstablishmentDate *Date   `gorm:"type:date" json:"establishment_date,omitempty"`
	CompanySize       *string `gorm:"type:varchar(50)" json:"company_size,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Manager) TableName() string {
	return "managers"
}
