package resource

import "context"

// Repository defines the interface for countable resource persistence.
// Each resource type maps to its own table; the implementation dispatches on
// the aggregate's type.
type Repository interface {
	// Create inserts a new resource row
	Create(ctx context.Context, r *Resource) error

	// Update persists flag and attribute changes
	Update(ctx context.Context, r *Resource) error

	// GetByID retrieves a resource of the given type by ID
	GetByID(ctx context.Context, resourceType Type, id uint) (*Resource, error)

	// ListByCompany retrieves a company's resources of one type.
	// Inactive rows are included only when includeInactive is set.
	ListByCompany(ctx context.Context, companyID uint, resourceType Type, includeInactive bool) ([]*Resource, error)
}
