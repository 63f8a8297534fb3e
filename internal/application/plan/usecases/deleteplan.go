package usecases

import (
	"context"

	appquota "facturo/internal/application/quota"
	"facturo/internal/domain/company"
	"facturo/internal/domain/plan"
	"facturo/internal/shared/errors"
	"facturo/internal/shared/logger"
)

// DeletePlanUseCase retires a plan from the catalog. Deletion is refused
// while any company still references the plan, so resolved limits for live
// tenants never dangle.
type DeletePlanUseCase struct {
	plans     plan.Repository
	companies company.Repository
	cache     appquota.LimitsCache
	logger    logger.Interface
}

// NewDeletePlanUseCase creates a new delete plan use case. cache may be nil.
func NewDeletePlanUseCase(plans plan.Repository, companies company.Repository, cache appquota.LimitsCache, logger logger.Interface) *DeletePlanUseCase {
	return &DeletePlanUseCase{
		plans:     plans,
		companies: companies,
		cache:     cache,
		logger:    logger,
	}
}

// Execute executes the delete plan use case
func (uc *DeletePlanUseCase) Execute(ctx context.Context, slug string) error {
	p, err := uc.plans.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if p == nil {
		return errors.NewNotFoundError("plan not found", slug)
	}

	referencing, err := uc.companies.CountByPlan(ctx, p.ID())
	if err != nil {
		return err
	}
	if referencing > 0 {
		uc.logger.Warnw("refusing to delete referenced plan",
			"plan_id", p.ID(), "slug", slug, "companies", referencing)
		return errors.NewConflictError(plan.ErrPlanReferenced.Error())
	}

	if err := uc.plans.Delete(ctx, p.ID()); err != nil {
		return err
	}
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, p.ID())
	}

	uc.logger.Infow("plan deleted", "plan_id", p.ID(), "slug", slug)
	return nil
}
