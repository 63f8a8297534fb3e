package usecases

import (
	"context"

	appquota "facturo/internal/application/quota"
	"facturo/internal/application/quota/dto"
	"facturo/internal/domain/quota"
	"facturo/internal/domain/resource"
	"facturo/internal/shared/errors"
	"facturo/internal/shared/logger"
)

// GetLimitInfoUseCase serves the read-only {count, limit} projection.
// Backend failures degrade to {0, -1}: the caller is a UI warning banner with
// no recovery path, so it gets "unlimited and empty" instead of an error.
type GetLimitInfoUseCase struct {
	gate   *appquota.Gate
	logger logger.Interface
}

// NewGetLimitInfoUseCase creates a new get limit info use case
func NewGetLimitInfoUseCase(gate *appquota.Gate, logger logger.Interface) *GetLimitInfoUseCase {
	return &GetLimitInfoUseCase{gate: gate, logger: logger}
}

// Execute returns the limit info for a company and resource type. An unknown
// resource type is a caller bug and fails as a validation error; everything
// behind it fails open.
func (uc *GetLimitInfoUseCase) Execute(ctx context.Context, companyID uint, rawType string) (*dto.LimitInfoDTO, error) {
	if companyID == 0 {
		return nil, errors.NewValidationError("company ID is required")
	}
	resourceType, err := resource.ParseType(rawType)
	if err != nil {
		return nil, errors.NewValidationError("invalid resource type: " + rawType)
	}

	eval, err := uc.gate.Evaluate(ctx, companyID, resourceType)
	if err != nil {
		uc.logger.Warnw("limit info unavailable, degrading to fail-open default",
			"error", err, "company_id", companyID, "resource_type", resourceType)
		return dto.ToLimitInfoDTO(quota.FailOpen()), nil
	}

	return dto.ToLimitInfoDTO(eval), nil
}
