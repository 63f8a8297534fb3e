package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facturo/internal/domain/plan"
	"facturo/internal/shared/logger"
)

type fakePlanRepo struct {
	plan    *plan.Plan
	updates int
}

func (r *fakePlanRepo) Create(ctx context.Context, p *plan.Plan) error { return nil }
func (r *fakePlanRepo) Update(ctx context.Context, p *plan.Plan) error {
	r.updates++
	r.plan = p
	return nil
}
func (r *fakePlanRepo) GetByID(ctx context.Context, id uint) (*plan.Plan, error) {
	return r.plan, nil
}
func (r *fakePlanRepo) GetBySlug(ctx context.Context, slug string) (*plan.Plan, error) {
	if r.plan != nil && r.plan.Slug() == slug {
		return r.plan, nil
	}
	return nil, nil
}
func (r *fakePlanRepo) GetByName(ctx context.Context, name string) (*plan.Plan, error) {
	return r.plan, nil
}
func (r *fakePlanRepo) ListPublic(ctx context.Context) ([]*plan.Plan, error) { return nil, nil }
func (r *fakePlanRepo) ListAll(ctx context.Context) ([]*plan.Plan, error)    { return nil, nil }
func (r *fakePlanRepo) Delete(ctx context.Context, id uint) error            { return nil }

type fakeCache struct {
	invalidations int
}

func (c *fakeCache) GetLimits(ctx context.Context, planID uint) (map[string]int, bool) {
	return nil, false
}
func (c *fakeCache) SetLimits(ctx context.Context, planID uint, limits map[string]int) {}
func (c *fakeCache) Invalidate(ctx context.Context, planID uint)                       { c.invalidations++ }

func newRepoWithPlan(t *testing.T) *fakePlanRepo {
	t.Helper()
	p, err := plan.NewPlan("Plan Pyme", "pyme", "", plan.NewLimitsDocument(map[plan.LimitKey]int{
		plan.LimitMaxEstablishments: 1,
	}))
	require.NoError(t, err)
	require.NoError(t, p.SetID(1))
	return &fakePlanRepo{plan: p}
}

func TestUpdatePlanLimits(t *testing.T) {
	repo := newRepoWithPlan(t)
	cache := &fakeCache{}
	uc := NewUpdatePlanLimitsUseCase(repo, cache, logger.NewLogger())

	result, err := uc.Execute(context.Background(), UpdatePlanLimitsCommand{
		Slug:   "pyme",
		Limits: map[string]int{"max_establishments": 2},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Limits["max_establishments"])
	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, 1, cache.invalidations)
}

func TestUpdatePlanLimits_SecondApplicationIsNoOp(t *testing.T) {
	repo := newRepoWithPlan(t)
	cache := &fakeCache{}
	uc := NewUpdatePlanLimitsUseCase(repo, cache, logger.NewLogger())
	cmd := UpdatePlanLimitsCommand{Slug: "pyme", Limits: map[string]int{"max_establishments": 2}}

	_, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	versionAfterFirst := repo.plan.Version()

	_, err = uc.Execute(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.updates, "no-op patch must not hit the repository")
	assert.Equal(t, 1, cache.invalidations, "no-op patch must not invalidate the cache")
	assert.Equal(t, versionAfterFirst, repo.plan.Version())
}

func TestUpdatePlanLimits_Validation(t *testing.T) {
	repo := newRepoWithPlan(t)
	uc := NewUpdatePlanLimitsUseCase(repo, nil, logger.NewLogger())

	tests := []struct {
		name string
		cmd  UpdatePlanLimitsCommand
	}{
		{
			name: "empty patch",
			cmd:  UpdatePlanLimitsCommand{Slug: "pyme", Limits: map[string]int{}},
		},
		{
			name: "value below the unlimited sentinel",
			cmd:  UpdatePlanLimitsCommand{Slug: "pyme", Limits: map[string]int{"max_sellers": -2}},
		},
		{
			name: "unknown limit key",
			cmd:  UpdatePlanLimitsCommand{Slug: "pyme", Limits: map[string]int{"max_widgets": 3}},
		},
		{
			name: "missing slug",
			cmd:  UpdatePlanLimitsCommand{Limits: map[string]int{"max_sellers": 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.cmd)
			assert.Error(t, err)
		})
	}
	assert.Equal(t, 0, repo.updates)
}

func TestUpdatePlanLimits_PlanNotFound(t *testing.T) {
	uc := NewUpdatePlanLimitsUseCase(&fakePlanRepo{}, nil, logger.NewLogger())

	_, err := uc.Execute(context.Background(), UpdatePlanLimitsCommand{
		Slug:   "missing",
		Limits: map[string]int{"max_sellers": 3},
	})

	assert.Error(t, err)
}
