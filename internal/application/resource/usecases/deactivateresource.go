package usecases

import (
	"context"

	"facturo/internal/application/resource/dto"
	"facturo/internal/domain/resource"
	"facturo/internal/shared/errors"
	"facturo/internal/shared/logger"
)

// DeactivateResourceUseCase soft-deletes a resource by clearing its active
// flag. The row remains and stops counting against quota.
type DeactivateResourceUseCase struct {
	resources resource.Repository
	logger    logger.Interface
}

// NewDeactivateResourceUseCase creates a new deactivate resource use case
func NewDeactivateResourceUseCase(resources resource.Repository, logger logger.Interface) *DeactivateResourceUseCase {
	return &DeactivateResourceUseCase{resources: resources, logger: logger}
}

// Execute executes the deactivate resource use case
func (uc *DeactivateResourceUseCase) Execute(ctx context.Context, rawType string, resourceID uint) (*dto.ResourceDTO, error) {
	resourceType, err := resource.ParseType(rawType)
	if err != nil {
		return nil, errors.NewValidationError("invalid resource type: " + rawType)
	}

	r, err := uc.resources.GetByID(ctx, resourceType, resourceID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errors.NewNotFoundError("resource not found")
	}

	if err := r.Deactivate(); err != nil {
		return nil, errors.NewConflictError(err.Error())
	}
	if err := uc.resources.Update(ctx, r); err != nil {
		return nil, err
	}

	uc.logger.Infow("resource deactivated",
		"company_id", r.CompanyID(),
		"resource_type", resourceType,
		"resource_id", resourceID,
	)
	return dto.ToResourceDTO(r), nil
}
