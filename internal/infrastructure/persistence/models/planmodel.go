package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlanModel represents the database persistence model for plans.
// This is the anti-corruption layer between domain and database; the
// limits document lives in a single JSON column so migration steps can
// rewrite it atomically.
type PlanModel struct {
	ID          uint   `gorm:"primarykey"`
	Name        string `gorm:"uniqueIndex;not null;size:100"`
	Slug        string `gorm:"uniqueIndex;not null;size:100"`
	Description string `gorm:"size:500"`
	Status      string `gorm:"not null;size:20;index:idx_plan_status"`
	Limits      datatypes.JSON
	IsPublic    bool `gorm:"not null;default:true"`
	SortOrder   int  `gorm:"not null;default:0"`
	Version     int  `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (PlanModel) TableName() string {
	return "plans"
}

// BeforeCreate hook for GORM
func (p *PlanModel) BeforeCreate(tx *gorm.DB) error {
	if p.Version == 0 {
		p.Version = 1
	}
	return nil
}
