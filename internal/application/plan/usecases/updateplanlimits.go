package usecases

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"facturo/internal/application/plan/dto"
	appquota "facturo/internal/application/quota"
	"facturo/internal/domain/plan"
	"facturo/internal/shared/errors"
	"facturo/internal/shared/logger"
)

// UpdatePlanLimitsCommand is the administrative limits patch. Values must be
// non-negative caps or -1 for unlimited; keys must belong to the known
// vocabulary since limit keys are a fixed set, not user-defined expressions.
type UpdatePlanLimitsCommand struct {
	Slug   string         `validate:"required"`
	Limits map[string]int `validate:"required,min=1,dive,gte=-1"`
}

// UpdatePlanLimitsUseCase applies an idempotent limits patch to a plan and
// invalidates the cached limits so read paths pick up the new caps.
type UpdatePlanLimitsUseCase struct {
	plans    plan.Repository
	cache    appquota.LimitsCache
	validate *validator.Validate
	logger   logger.Interface
}

// NewUpdatePlanLimitsUseCase creates a new update plan limits use case.
// cache may be nil.
func NewUpdatePlanLimitsUseCase(plans plan.Repository, cache appquota.LimitsCache, logger logger.Interface) *UpdatePlanLimitsUseCase {
	return &UpdatePlanLimitsUseCase{
		plans:    plans,
		cache:    cache,
		validate: validator.New(),
		logger:   logger,
	}
}

// Execute executes the update plan limits use case
func (uc *UpdatePlanLimitsUseCase) Execute(ctx context.Context, cmd UpdatePlanLimitsCommand) (*dto.PlanDTO, error) {
	if err := uc.validate.Struct(cmd); err != nil {
		return nil, errors.NewValidationError("invalid limits patch", err.Error())
	}

	patch := make(map[plan.LimitKey]int, len(cmd.Limits))
	for raw, value := range cmd.Limits {
		key := plan.LimitKey(raw)
		if !key.IsValid() {
			return nil, errors.NewValidationError(fmt.Sprintf("unknown limit key: %s", raw))
		}
		patch[key] = value
	}

	p, err := uc.plans.GetBySlug(ctx, cmd.Slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.NewNotFoundError("plan not found", cmd.Slug)
	}

	changed, err := p.ApplyLimitsPatch(patch)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if changed {
		if err := uc.plans.Update(ctx, p); err != nil {
			return nil, err
		}
		if uc.cache != nil {
			uc.cache.Invalidate(ctx, p.ID())
		}
		uc.logger.Infow("plan limits updated",
			"plan_id", p.ID(), "slug", p.Slug(), "version", p.Version())
	}

	return dto.ToPlanDTO(p), nil
}
