package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"facturo/internal/domain/company"
	"facturo/internal/domain/plan"
	"facturo/internal/domain/resource"
	"facturo/internal/infrastructure/persistence/models"
	"facturo/internal/shared/db"
	"facturo/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = database.AutoMigrate(
		&models.PlanModel{},
		&models.CompanyModel{},
		&models.EstablishmentModel{},
		&models.EmissionPointModel{},
		&models.ContactModel{},
		&models.WarehouseModel{},
		&models.SellerModel{},
	)
	require.NoError(t, err)

	return database
}

func createTestPlan(t *testing.T, name, slug string, limits map[plan.LimitKey]int) *plan.Plan {
	t.Helper()
	p, err := plan.NewPlan(name, slug, "Test plan", plan.NewLimitsDocument(limits))
	require.NoError(t, err)
	return p
}

func TestPlanRepository_CreateAndGet(t *testing.T) {
	database := setupTestDB(t)
	repo := NewPlanRepository(database, logger.NewLogger())
	ctx := context.Background()

	t.Run("create assigns ID and round trips limits", func(t *testing.T) {
		p := createTestPlan(t, "Pyme", "pyme", map[plan.LimitKey]int{
			plan.LimitMaxSellers:    3,
			plan.LimitMaxWarehouses: plan.Unlimited,
		})

		err := repo.Create(ctx, p)
		require.NoError(t, err)
		assert.NotZero(t, p.ID())

		found, err := repo.GetBySlug(ctx, "pyme")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, p.ID(), found.ID())
		assert.Equal(t, 1, found.Version())
		assert.True(t, p.Limits().Equal(found.Limits()))
	})

	t.Run("missing plan returns nil without error", func(t *testing.T) {
		found, err := repo.GetByID(ctx, 99999)
		assert.NoError(t, err)
		assert.Nil(t, found)

		found, err = repo.GetBySlug(ctx, "no-such-plan")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestPlanRepository_Update(t *testing.T) {
	database := setupTestDB(t)
	repo := NewPlanRepository(database, logger.NewLogger())
	ctx := context.Background()

	t.Run("patch bumps version", func(t *testing.T) {
		p := createTestPlan(t, "Basic", "basic", map[plan.LimitKey]int{plan.LimitMaxSellers: 2})
		require.NoError(t, repo.Create(ctx, p))

		changed, err := p.ApplyLimitsPatch(map[plan.LimitKey]int{plan.LimitMaxSellers: 5})
		require.NoError(t, err)
		require.True(t, changed)

		require.NoError(t, repo.Update(ctx, p))

		found, err := repo.GetByID(ctx, p.ID())
		require.NoError(t, err)
		assert.Equal(t, 2, found.Version())
		assert.Equal(t, 5, found.Limits().Resolve(plan.LimitMaxSellers))
	})

	t.Run("concurrent update loses on version guard", func(t *testing.T) {
		p := createTestPlan(t, "Pro", "pro", map[plan.LimitKey]int{plan.LimitMaxSellers: 2})
		require.NoError(t, repo.Create(ctx, p))

		first, err := repo.GetByID(ctx, p.ID())
		require.NoError(t, err)
		second, err := repo.GetByID(ctx, p.ID())
		require.NoError(t, err)

		_, err = first.ApplyLimitsPatch(map[plan.LimitKey]int{plan.LimitMaxSellers: 10})
		require.NoError(t, err)
		require.NoError(t, repo.Update(ctx, first))

		_, err = second.ApplyLimitsPatch(map[plan.LimitKey]int{plan.LimitMaxSellers: 20})
		require.NoError(t, err)
		err = repo.Update(ctx, second)
		assert.ErrorIs(t, err, plan.ErrVersionConflict)

		found, err := repo.GetByID(ctx, p.ID())
		require.NoError(t, err)
		assert.Equal(t, 10, found.Limits().Resolve(plan.LimitMaxSellers))
	})

	t.Run("update of missing plan reports not found", func(t *testing.T) {
		p := createTestPlan(t, "Ghost", "ghost", nil)
		require.NoError(t, p.SetID(99999))
		_, err := p.ApplyLimitsPatch(map[plan.LimitKey]int{plan.LimitMaxSellers: 1})
		require.NoError(t, err)

		err = repo.Update(ctx, p)
		assert.ErrorIs(t, err, plan.ErrPlanNotFound)
	})
}

func TestPlanRepository_ListPublic(t *testing.T) {
	database := setupTestDB(t)
	repo := NewPlanRepository(database, logger.NewLogger())
	ctx := context.Background()

	visible := createTestPlan(t, "Visible", "visible", nil)
	require.NoError(t, repo.Create(ctx, visible))

	hidden := createTestPlan(t, "Hidden", "hidden", nil)
	hidden.Deactivate()
	require.NoError(t, repo.Create(ctx, hidden))

	plans, err := repo.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "visible", plans[0].Slug())

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPlanRepository_Delete(t *testing.T) {
	database := setupTestDB(t)
	repo := NewPlanRepository(database, logger.NewLogger())
	ctx := context.Background()

	p := createTestPlan(t, "Retired", "retired", nil)
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID()))

	found, err := repo.GetBySlug(ctx, "retired")
	require.NoError(t, err)
	assert.Nil(t, found, "soft deleted plan must not resolve")

	err = repo.Delete(ctx, p.ID())
	assert.ErrorIs(t, err, plan.ErrPlanNotFound)
}

func seedCompany(t *testing.T, database *gorm.DB, planID uint) *company.Company {
	t.Helper()
	repo := NewCompanyRepository(database, logger.NewLogger())
	c, err := company.NewCompany("Acme", planID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func TestResourceRepository_Lifecycle(t *testing.T) {
	database := setupTestDB(t)
	repo := NewResourceRepository(database, logger.NewLogger())
	ctx := context.Background()
	c := seedCompany(t, database, 1)

	t.Run("create and fetch", func(t *testing.T) {
		res, err := resource.NewResource(c.ID(), resource.TypeWarehouse, "Main warehouse", "WH-01")
		require.NoError(t, err)

		require.NoError(t, repo.Create(ctx, res))
		assert.NotZero(t, res.ID())

		found, err := repo.GetByID(ctx, resource.TypeWarehouse, res.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Main warehouse", found.Name())
		assert.True(t, found.IsActive())
	})

	t.Run("rows live in per-type tables", func(t *testing.T) {
		res, err := resource.NewResource(c.ID(), resource.TypeSeller, "Seller one", "")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, res))

		found, err := repo.GetByID(ctx, resource.TypeContact, res.ID())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("deactivate persists and filters from listing", func(t *testing.T) {
		res, err := resource.NewResource(c.ID(), resource.TypeContact, "Contact", "")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, res))

		require.NoError(t, res.Deactivate())
		require.NoError(t, repo.Update(ctx, res))

		active, err := repo.ListByCompany(ctx, c.ID(), resource.TypeContact, false)
		require.NoError(t, err)
		assert.Len(t, active, 0)

		all, err := repo.ListByCompany(ctx, c.ID(), resource.TypeContact, true)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.False(t, all[0].IsActive())
	})

	t.Run("update of missing resource reports not found", func(t *testing.T) {
		res, err := resource.NewResource(c.ID(), resource.TypeWarehouse, "Phantom", "")
		require.NoError(t, err)
		require.NoError(t, res.SetID(99999))

		err = repo.Update(ctx, res)
		assert.ErrorIs(t, err, resource.ErrResourceNotFound)
	})
}

func TestResourceCounterRepository_CountActive(t *testing.T) {
	database := setupTestDB(t)
	repo := NewResourceRepository(database, logger.NewLogger())
	counter := NewResourceCounterRepository(database, logger.NewLogger())
	ctx := context.Background()
	c := seedCompany(t, database, 1)
	other := seedCompany(t, database, 1)

	for i := 0; i < 3; i++ {
		res, err := resource.NewResource(c.ID(), resource.TypeSeller, "Seller", "")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, res))
	}

	deactivated, err := resource.NewResource(c.ID(), resource.TypeSeller, "Former seller", "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, deactivated))
	require.NoError(t, deactivated.Deactivate())
	require.NoError(t, repo.Update(ctx, deactivated))

	foreign, err := resource.NewResource(other.ID(), resource.TypeSeller, "Other seller", "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, foreign))

	count, err := counter.CountActive(ctx, c.ID(), resource.TypeSeller)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = counter.CountActive(ctx, c.ID(), resource.TypeWarehouse)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCompanyRepository(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCompanyRepository(database, logger.NewLogger())
	ctx := context.Background()

	t.Run("create and fetch", func(t *testing.T) {
		c, err := company.NewCompany("Acme", 7)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, c))

		found, err := repo.GetByID(ctx, c.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Acme", found.Name())
		assert.Equal(t, uint(7), found.PlanID())
	})

	t.Run("count by plan", func(t *testing.T) {
		c, err := company.NewCompany("Second", 7)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, c))

		count, err := repo.CountByPlan(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		count, err = repo.CountByPlan(ctx, 8)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("missing company returns nil without error", func(t *testing.T) {
		found, err := repo.GetByID(ctx, 99999)
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestRepositories_JoinContextTransaction(t *testing.T) {
	database := setupTestDB(t)
	repo := NewResourceRepository(database, logger.NewLogger())
	txManager := db.NewTransactionManager(database)
	ctx := context.Background()
	c := seedCompany(t, database, 1)

	err := txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		res, err := resource.NewResource(c.ID(), resource.TypeEstablishment, "Branch", "")
		if err != nil {
			return err
		}
		if err := repo.Create(txCtx, res); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.Error(t, err)

	rows, err := repo.ListByCompany(ctx, c.ID(), resource.TypeEstablishment, true)
	require.NoError(t, err)
	assert.Len(t, rows, 0, "rollback must discard the insert")
}
