package migration

import (
	"fmt"

	"gorm.io/gorm"

	"facturo/internal/infrastructure/persistence/models"
	"facturo/internal/shared/logger"
)

// AllModels returns every persistence model in dependency order. Plans come
// before companies (companies reference a plan), resource tables last.
func AllModels() []interface{} {
	return append([]interface{}{
		&models.PlanModel{},
		&models.CompanyModel{},
	}, resourceModels()...)
}

// resourceModels returns the countable resource tables, the ones that carry
// the is_active flag.
func resourceModels() []interface{} {
	return []interface{}{
		&models.EstablishmentModel{},
		&models.EmissionPointModel{},
		&models.ContactModel{},
		&models.WarehouseModel{},
		&models.SellerModel{},
	}
}

// GormAutoMigrateStrategy implements migration using GORM AutoMigrate.
// Development only; staging and production run versioned SQL scripts.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

// NewGormAutoMigrateStrategy creates a new GORM AutoMigrate strategy
func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.gorm-automigrate"),
	}
}

// Migrate executes GORM AutoMigrate for the given models
func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, migrateModels ...interface{}) error {
	if len(migrateModels) == 0 {
		migrateModels = AllModels()
	}

	s.logger.Infow("starting GORM AutoMigrate", "models_count", len(migrateModels))

	if err := db.AutoMigrate(migrateModels...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	s.logger.Infow("GORM AutoMigrate completed successfully")
	return nil
}

// GetName returns the strategy name
func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
