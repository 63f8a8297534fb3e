package resource

import "context"

// Counter computes the number of active resources of one type a company holds.
type Counter interface {
	// CountActive counts rows with is_active = true for the company. Advisory
	// reads (limit-info) use this; it takes no locks and may observe slightly
	// stale counts under concurrent writes.
	CountActive(ctx context.Context, companyID uint, resourceType Type) (int, error)

	// CountActiveForUpdate is the gate variant: it locks the company row for
	// the current transaction before counting, so concurrent creations for the
	// same company serialize and cannot both observe the last free slot.
	CountActiveForUpdate(ctx context.Context, companyID uint, resourceType Type) (int, error)
}
