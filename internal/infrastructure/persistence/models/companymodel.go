package models

import (
	"time"

	"gorm.io/gorm"
)

// CompanyModel represents the database persistence model for companies.
// Quota checks lock this row (SELECT FOR UPDATE) to serialize concurrent
// resource creation within one tenant.
type CompanyModel struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"not null;size:200"`
	PlanID    uint   `gorm:"not null;index:idx_company_plan"`
	Status    string `gorm:"not null;size:20;index:idx_company_status"`
	Version   int    `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// BeforeCreate hook for GORM
func (c *CompanyModel) BeforeCreate(tx *gorm.DB) error {
	if c.Version == 0 {
		c.Version = 1
	}
	return nil
}
