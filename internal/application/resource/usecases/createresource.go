package usecases

import (
	"context"

	"facturo/internal/application/resource/dto"
	"facturo/internal/domain/resource"
	"facturo/internal/shared/errors"
	"facturo/internal/shared/logger"
)

// CreateResourceUseCase creates a countable resource behind the entitlement
// gate. The quota check and the row insert share one transaction so two
// concurrent requests cannot both take the last free slot.
type CreateResourceUseCase struct {
	tx        TxRunner
	gate      EntitlementGate
	resources resource.Repository
	logger    logger.Interface
}

// NewCreateResourceUseCase creates a new create resource use case
func NewCreateResourceUseCase(
	tx TxRunner,
	gate EntitlementGate,
	resources resource.Repository,
	logger logger.Interface,
) *CreateResourceUseCase {
	return &CreateResourceUseCase{
		tx:        tx,
		gate:      gate,
		resources: resources,
		logger:    logger,
	}
}

// Execute executes the create resource use case. On an exhausted quota the
// returned error is quota.ExceededError; the caller surfaces its count and
// limit to the client.
func (uc *CreateResourceUseCase) Execute(ctx context.Context, request dto.CreateResourceRequest) (*dto.ResourceDTO, error) {
	resourceType, err := resource.ParseType(request.ResourceType)
	if err != nil {
		return nil, errors.NewValidationError("invalid resource type: " + request.ResourceType)
	}

	r, err := resource.NewResource(request.CompanyID, resourceType, request.Name, request.Code)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.gate.Check(txCtx, request.CompanyID, resourceType); err != nil {
			return err
		}
		return uc.resources.Create(txCtx, r)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("resource created",
		"company_id", request.CompanyID,
		"resource_type", resourceType,
		"resource_id", r.ID(),
	)
	return dto.ToResourceDTO(r), nil
}
