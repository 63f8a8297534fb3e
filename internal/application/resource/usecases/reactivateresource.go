package usecases

import (
	"context"

	"facturo/internal/application/resource/dto"
	"facturo/internal/domain/resource"
	"facturo/internal/shared/errors"
	"facturo/internal/shared/logger"
)

// ReactivateResourceUseCase flips an inactive resource back to active. It
// re-enters the entitlement gate exactly like creation: a reactivated row
// consumes a quota slot again.
type ReactivateResourceUseCase struct {
	tx        TxRunner
	gate      EntitlementGate
	resources resource.Repository
	logger    logger.Interface
}

// NewReactivateResourceUseCase creates a new reactivate resource use case
func NewReactivateResourceUseCase(
	tx TxRunner,
	gate EntitlementGate,
	resources resource.Repository,
	logger logger.Interface,
) *ReactivateResourceUseCase {
	return &ReactivateResourceUseCase{
		tx:        tx,
		gate:      gate,
		resources: resources,
		logger:    logger,
	}
}

// Execute executes the reactivate resource use case
func (uc *ReactivateResourceUseCase) Execute(ctx context.Context, rawType string, resourceID uint) (*dto.ResourceDTO, error) {
	resourceType, err := resource.ParseType(rawType)
	if err != nil {
		return nil, errors.NewValidationError("invalid resource type: " + rawType)
	}

	var r *resource.Resource
	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		r, err = uc.resources.GetByID(txCtx, resourceType, resourceID)
		if err != nil {
			return err
		}
		if r == nil {
			return errors.NewNotFoundError("resource not found")
		}

		if _, err := uc.gate.Check(txCtx, r.CompanyID(), resourceType); err != nil {
			return err
		}
		if err := r.Reactivate(); err != nil {
			return errors.NewConflictError(err.Error())
		}
		return uc.resources.Update(txCtx, r)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("resource reactivated",
		"company_id", r.CompanyID(),
		"resource_type", resourceType,
		"resource_id", resourceID,
	)
	return dto.ToResourceDTO(r), nil
}
