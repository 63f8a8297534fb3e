package usecases

import (
	"context"

	"facturo/internal/application/plan/dto"
	"facturo/internal/domain/plan"
	"facturo/internal/shared/errors"
	"facturo/internal/shared/logger"
)

// GetPlanUseCase retrieves a single plan by slug.
type GetPlanUseCase struct {
	plans  plan.Repository
	logger logger.Interface
}

// NewGetPlanUseCase creates a new get plan use case
func NewGetPlanUseCase(plans plan.Repository, logger logger.Interface) *GetPlanUseCase {
	return &GetPlanUseCase{plans: plans, logger: logger}
}

// Execute executes the get plan use case
func (uc *GetPlanUseCase) Execute(ctx context.Context, slug string) (*dto.PlanDTO, error) {
	if slug == "" {
		return nil, errors.NewValidationError("plan slug is required")
	}

	p, err := uc.plans.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.NewNotFoundError("plan not found", slug)
	}
	return dto.ToPlanDTO(p), nil
}
