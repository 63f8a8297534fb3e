package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"facturo/internal/infrastructure/persistence/models"
)

func TestEnsureActiveFlagColumns_BackfillsLegacyTable(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Table shape from before soft deletion existed: no is_active column.
	require.NoError(t, db.Exec(
		`CREATE TABLE sellers (
			id integer PRIMARY KEY AUTOINCREMENT,
			company_id integer,
			name text,
			code text,
			created_at datetime,
			updated_at datetime
		)`).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO sellers (company_id, name) VALUES (1, 'Vendedor histórico')").Error)

	require.NoError(t, EnsureActiveFlagColumns(db))

	migrator := db.Migrator()
	assert.True(t, migrator.HasColumn(&models.SellerModel{}, "is_active"))
	assert.True(t, migrator.HasIndex(&models.SellerModel{}, "idx_company_active"))

	// Rows predating the flag count as active.
	var active int64
	require.NoError(t, db.Table("sellers").Where("is_active = ?", true).Count(&active).Error)
	assert.Equal(t, int64(1), active)
}

func TestEnsureActiveFlagColumns_SkipsMissingAndNonResourceTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Only the plans table exists; it carries no flag and none of the
	// resource tables are present yet.
	require.NoError(t, db.AutoMigrate(&models.PlanModel{}))

	require.NoError(t, EnsureActiveFlagColumns(db))

	migrator := db.Migrator()
	assert.False(t, migrator.HasColumn(&models.PlanModel{}, "is_active"))
	assert.False(t, migrator.HasTable(&models.SellerModel{}))
}

func TestAllModels_CoversResourceModels(t *testing.T) {
	all := AllModels()
	require.Len(t, all, len(resourceModels())+2)
	assert.IsType(t, &models.PlanModel{}, all[0])
	assert.IsType(t, &models.CompanyModel{}, all[1])
	for i, m := range resourceModels() {
		assert.IsType(t, m, all[i+2])
	}
}
