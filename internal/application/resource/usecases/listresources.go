package usecases

import (
	"context"

	"facturo/internal/application/resource/dto"
	"facturo/internal/domain/resource"
	"facturo/internal/shared/errors"
	"facturo/internal/shared/logger"
)

// ListResourcesUseCase lists a company's resources of one type.
type ListResourcesUseCase struct {
	resources resource.Repository
	logger    logger.Interface
}

// NewListResourcesUseCase creates a new list resources use case
func NewListResourcesUseCase(resources resource.Repository, logger logger.Interface) *ListResourcesUseCase {
	return &ListResourcesUseCase{resources: resources, logger: logger}
}

// Execute executes the list resources use case
func (uc *ListResourcesUseCase) Execute(ctx context.Context, companyID uint, rawType string, includeInactive bool) ([]*dto.ResourceDTO, error) {
	if companyID == 0 {
		return nil, errors.NewValidationError("company ID is required")
	}
	resourceType, err := resource.ParseType(rawType)
	if err != nil {
		return nil, errors.NewValidationError("invalid resource type: " + rawType)
	}

	resources, err := uc.resources.ListByCompany(ctx, companyID, resourceType, includeInactive)
	if err != nil {
		return nil, err
	}
	return dto.ToResourceDTOs(resources), nil
}
