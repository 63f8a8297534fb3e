package migration

import (
	"fmt"

	"gorm.io/gorm"

	appLogger "facturo/internal/shared/logger"
)

// EnsureActiveFlagColumns guarantees every resource table carries the
// is_active flag and its covering index. Tables created before the flag
// existed get the column added with all rows backfilled to active, matching
// how those rows behaved when deletion was physical.
func EnsureActiveFlagColumns(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, model := range resourceModels() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("failed to parse model: %w", err)
		}
		table := stmt.Schema.Table

		if !migrator.HasTable(model) {
			continue
		}

		if !migrator.HasColumn(model, "is_active") {
			appLogger.Info("adding missing is_active column", "table", table)

			if err := migrator.AddColumn(model, "IsActive"); err != nil {
				return fmt.Errorf("failed to add is_active to %s: %w", table, err)
			}
			// Rows predating the flag were all live rows.
			if err := db.Table(table).Where("is_active IS NULL").Update("is_active", true).Error; err != nil {
				return fmt.Errorf("failed to backfill is_active on %s: %w", table, err)
			}
		}

		if !migrator.HasIndex(model, "idx_company_active") {
			if err := migrator.CreateIndex(model, "idx_company_active"); err != nil {
				return fmt.Errorf("failed to create idx_company_active on %s: %w", table, err)
			}
		}
	}

	return nil
}
