package company

import "context"

// Repository defines the interface for company persistence operations
type Repository interface {
	// Create creates a new company
	Create(ctx context.Context, c *Company) error

	// Update persists company changes
	Update(ctx context.Context, c *Company) error

	// GetByID retrieves a company by ID
	GetByID(ctx context.Context, id uint) (*Company, error)

	// CountByPlan counts companies referencing a plan. Plans with a non-zero
	// count must never be deleted.
	CountByPlan(ctx context.Context, planID uint) (int64, error)
}
