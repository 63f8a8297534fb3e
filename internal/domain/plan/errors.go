package plan

import "errors"

var (
	// ErrPlanNotFound is returned when a plan is not found
	ErrPlanNotFound = errors.New("plan not found")

	// ErrPlanReferenced is returned when deleting a plan that companies still reference
	ErrPlanReferenced = errors.New("plan is referenced by existing companies")

	// ErrInvalidLimitValue is returned for limit values outside the legal domain.
	// Legal values are non-negative caps or the Unlimited sentinel.
	ErrInvalidLimitValue = errors.New("invalid limit value")

	// ErrDuplicateSlug is returned when creating a plan with an existing slug
	ErrDuplicateSlug = errors.New("plan slug already exists")

	// ErrVersionConflict is returned when a version-guarded update matched no row
	ErrVersionConflict = errors.New("plan was modified concurrently")
)
