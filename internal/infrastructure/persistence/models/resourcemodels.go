package models

import (
	"time"
)

// ResourceColumns is the shared column set of all countable resource tables.
// Each resource type gets its own table; the composite index keeps the
// COUNT(*) ... WHERE company_id = ? AND is_active = 1 used by quota checks
// on the index.
type ResourceColumns struct {
	ID        uint   `gorm:"primarykey"`
	CompanyID uint   `gorm:"not null;index:idx_company_active,priority:1"`
	Name      string `gorm:"not null;size:200"`
	Code      string `gorm:"size:50"`
	IsActive  bool   `gorm:"not null;default:true;index:idx_company_active,priority:2"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EstablishmentModel persists establishment resources.
type EstablishmentModel struct {
	ResourceColumns
}

// TableName specifies the table name for GORM
func (EstablishmentModel) TableName() string {
	return "establishments"
}

// EmissionPointModel persists emission point resources.
type EmissionPointModel struct {
	ResourceColumns
}

// TableName specifies the table name for GORM
func (EmissionPointModel) TableName() string {
	return "emission_points"
}

// ContactModel persists contact resources. Contacts count against the
// max_total_users limit rather than a key of their own.
type ContactModel struct {
	ResourceColumns
}

// TableName specifies the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// WarehouseModel persists warehouse resources.
type WarehouseModel struct {
	ResourceColumns
}

// TableName specifies the table name for GORM
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// SellerModel persists seller resources.
type SellerModel struct {
	ResourceColumns
}

// TableName specifies the table name for GORM
func (SellerModel) TableName() string {
	return "sellers"
}

var resourceTables = map[string]string{
	"establishment":  EstablishmentModel{}.TableName(),
	"emission_point": EmissionPointModel{}.TableName(),
	"contact":        ContactModel{}.TableName(),
	"warehouse":      WarehouseModel{}.TableName(),
	"seller":         SellerModel{}.TableName(),
}

// ResourceTableName returns the table holding rows of the given resource type.
func ResourceTableName(resourceType string) (string, bool) {
	table, ok := resourceTables[resourceType]
	return table, ok
}
