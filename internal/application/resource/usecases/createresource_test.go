package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appquota "facturo/internal/application/quota"
	"facturo/internal/application/resource/dto"
	"facturo/internal/domain/company"
	"facturo/internal/domain/plan"
	"facturo/internal/domain/quota"
	"facturo/internal/domain/resource"
	"facturo/internal/shared/logger"
)

// =====================================================================
// In-memory backing store
//
// One mutex guards the whole store and is held for the duration of each
// "transaction", mirroring the serialization the locking counter provides
// against a real database.
// =====================================================================

type memStore struct {
	mu      sync.Mutex
	limits  map[plan.LimitKey]int
	active  int
	nextID  uint
	company *company.Company
	plan    *plan.Plan
}

func newMemStore(t *testing.T, limits map[plan.LimitKey]int, active int) *memStore {
	t.Helper()
	p, err := plan.NewPlan("Plan Pyme", "pyme", "", plan.NewLimitsDocument(limits))
	require.NoError(t, err)
	require.NoError(t, p.SetID(1))

	c, err := company.NewCompany("Acme S.A.", 1)
	require.NoError(t, err)
	require.NoError(t, c.SetID(1))

	return &memStore{limits: limits, active: active, company: c, plan: p}
}

type memTx struct{ store *memStore }

func (tx *memTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	return fn(ctx)
}

type memCompanyRepo struct{ store *memStore }

func (r *memCompanyRepo) Create(ctx context.Context, c *company.Company) error { return nil }
func (r *memCompanyRepo) Update(ctx context.Context, c *company.Company) error { return nil }
func (r *memCompanyRepo) GetByID(ctx context.Context, id uint) (*company.Company, error) {
	if id != r.store.company.ID() {
		return nil, nil
	}
	return r.store.company, nil
}
func (r *memCompanyRepo) CountByPlan(ctx context.Context, planID uint) (int64, error) {
	return 1, nil
}

type memPlanRepo struct{ store *memStore }

func (r *memPlanRepo) Create(ctx context.Context, p *plan.Plan) error { return nil }
func (r *memPlanRepo) Update(ctx context.Context, p *plan.Plan) error { return nil }
func (r *memPlanRepo) GetByID(ctx context.Context, id uint) (*plan.Plan, error) {
	return r.store.plan, nil
}
func (r *memPlanRepo) GetBySlug(ctx context.Context, slug string) (*plan.Plan, error) {
	return r.store.plan, nil
}
func (r *memPlanRepo) GetByName(ctx context.Context, name string) (*plan.Plan, error) {
	return r.store.plan, nil
}
func (r *memPlanRepo) ListPublic(ctx context.Context) ([]*plan.Plan, error) {
	return []*plan.Plan{r.store.plan}, nil
}
func (r *memPlanRepo) ListAll(ctx context.Context) ([]*plan.Plan, error) {
	return []*plan.Plan{r.store.plan}, nil
}
func (r *memPlanRepo) Delete(ctx context.Context, id uint) error { return nil }

type memCounter struct{ store *memStore }

func (c *memCounter) CountActive(ctx context.Context, companyID uint, rt resource.Type) (int, error) {
	return c.store.active, nil
}
func (c *memCounter) CountActiveForUpdate(ctx context.Context, companyID uint, rt resource.Type) (int, error) {
	return c.store.active, nil
}

type memResourceRepo struct{ store *memStore }

func (r *memResourceRepo) Create(ctx context.Context, res *resource.Resource) error {
	r.store.active++
	r.store.nextID++
	return res.SetID(r.store.nextID)
}
func (r *memResourceRepo) Update(ctx context.Context, res *resource.Resource) error { return nil }
func (r *memResourceRepo) GetByID(ctx context.Context, rt resource.Type, id uint) (*resource.Resource, error) {
	return nil, nil
}
func (r *memResourceRepo) ListByCompany(ctx context.Context, companyID uint, rt resource.Type, includeInactive bool) ([]*resource.Resource, error) {
	return nil, nil
}

func newTestCreateUC(store *memStore) *CreateResourceUseCase {
	log := logger.NewLogger()
	gate := appquota.NewGate(
		&memCompanyRepo{store: store},
		&memPlanRepo{store: store},
		&memCounter{store: store},
		nil,
		log,
	)
	return NewCreateResourceUseCase(&memTx{store: store}, gate, &memResourceRepo{store: store}, log)
}

// =====================================================================
// Tests
// =====================================================================

func TestCreateResource_WithinQuota(t *testing.T) {
	store := newMemStore(t, map[plan.LimitKey]int{plan.LimitMaxEstablishments: 2}, 0)
	uc := newTestCreateUC(store)

	result, err := uc.Execute(context.Background(), dto.CreateResourceRequest{
		CompanyID:    1,
		ResourceType: "establishment",
		Name:         "Matriz",
	})

	require.NoError(t, err)
	assert.True(t, result.IsActive)
	assert.Equal(t, 1, store.active)
}

func TestCreateResource_QuotaExhausted(t *testing.T) {
	store := newMemStore(t, map[plan.LimitKey]int{plan.LimitMaxEstablishments: 2}, 2)
	uc := newTestCreateUC(store)

	_, err := uc.Execute(context.Background(), dto.CreateResourceRequest{
		CompanyID:    1,
		ResourceType: "establishment",
		Name:         "Sucursal",
	})

	require.Error(t, err)
	exceeded, ok := quota.AsExceeded(err)
	require.True(t, ok, "expected quota.ExceededError, got %v", err)
	assert.Equal(t, 2, exceeded.Count)
	assert.Equal(t, 2, exceeded.Limit)
	assert.Equal(t, 2, store.active, "no row may be inserted on rejection")
}

func TestCreateResource_ZeroLimitRejectsFirstCreation(t *testing.T) {
	store := newMemStore(t, map[plan.LimitKey]int{plan.LimitMaxWarehouses: 0}, 0)
	uc := newTestCreateUC(store)

	_, err := uc.Execute(context.Background(), dto.CreateResourceRequest{
		CompanyID:    1,
		ResourceType: "warehouse",
		Name:         "Bodega",
	})

	_, ok := quota.AsExceeded(err)
	require.True(t, ok, "zero limit must reject like any exhausted quota, got %v", err)
}

func TestCreateResource_UnlimitedByAbsentKey(t *testing.T) {
	// No max_emission_points key stored: resolution fails open to unlimited.
	store := newMemStore(t, map[plan.LimitKey]int{plan.LimitMaxEstablishments: 1}, 50)
	uc := newTestCreateUC(store)

	_, err := uc.Execute(context.Background(), dto.CreateResourceRequest{
		CompanyID:    1,
		ResourceType: "emission_point",
		Name:         "Caja 1",
	})

	require.NoError(t, err)
}

func TestCreateResource_InvalidType(t *testing.T) {
	store := newMemStore(t, nil, 0)
	uc := newTestCreateUC(store)

	_, err := uc.Execute(context.Background(), dto.CreateResourceRequest{
		CompanyID:    1,
		ResourceType: "invoice",
		Name:         "x",
	})

	require.Error(t, err)
}

func TestCreateResource_ConcurrentCreationsNeverOversubscribe(t *testing.T) {
	const (
		limit    = 5
		existing = 2
		attempts = 16
	)
	store := newMemStore(t, map[plan.LimitKey]int{plan.LimitMaxSellers: limit}, existing)
	uc := newTestCreateUC(store)

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), dto.CreateResourceRequest{
				CompanyID:    1,
				ResourceType: "seller",
				Name:         "Vendedor",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, rejections int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		_, ok := quota.AsExceeded(err)
		require.True(t, ok, "unexpected error kind: %v", err)
		rejections++
	}

	assert.Equal(t, limit-existing, successes, "exactly the free slots may be filled")
	assert.Equal(t, attempts-(limit-existing), rejections)
	assert.Equal(t, limit, store.active, "active count must land exactly on the limit")
}
