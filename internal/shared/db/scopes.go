package db

import (
	"gorm.io/gorm"
)

// ActiveOnly filters for rows whose is_active flag is set. The flag is the
// sole soft-delete marker for countable resources; quota counting must always
// go through this scope.
//
// Example usage:
//
//	db.Model(&EstablishmentModel{}).Scopes(db.ActiveOnly()).Where("company_id = ?", id).Count(&n)
func ActiveOnly() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
}

// ActiveOnlyWithAlias filters on a specific table's is_active when joining.
func ActiveOnlyWithAlias(alias string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(alias+".is_active = ?", true)
	}
}

// OwnedBy scopes a query to a single company's rows.
func OwnedBy(companyID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
