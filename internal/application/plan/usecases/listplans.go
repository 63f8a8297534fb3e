package usecases

import (
	"context"

	"facturo/internal/application/plan/dto"
	"facturo/internal/domain/plan"
	"facturo/internal/shared/logger"
)

// ListPlansUseCase lists the active public plans.
type ListPlansUseCase struct {
	plans  plan.Repository
	logger logger.Interface
}

// NewListPlansUseCase creates a new list plans use case
func NewListPlansUseCase(plans plan.Repository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{plans: plans, logger: logger}
}

// Execute executes the list plans use case
func (uc *ListPlansUseCase) Execute(ctx context.Context) ([]*dto.PlanDTO, error) {
	plans, err := uc.plans.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToPlanDTOs(plans), nil
}
