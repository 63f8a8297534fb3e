package plan

import "context"

// Repository defines the interface for plan persistence operations
type Repository interface {
	// Create creates a new plan
	Create(ctx context.Context, p *Plan) error

	// Update persists the plan with a version guard; returns ErrVersionConflict
	// when the stored version moved underneath the caller.
	Update(ctx context.Context, p *Plan) error

	// GetByID retrieves a plan by ID
	GetByID(ctx context.Context, id uint) (*Plan, error)

	// GetBySlug retrieves a plan by slug
	GetBySlug(ctx context.Context, slug string) (*Plan, error)

	// GetByName retrieves a plan by its unique name (migration lookup key)
	GetByName(ctx context.Context, name string) (*Plan, error)

	// ListPublic retrieves active public plans ordered by sort order
	ListPublic(ctx context.Context) ([]*Plan, error)

	// ListAll retrieves every plan, used by limits document migrations
	ListAll(ctx context.Context) ([]*Plan, error)

	// Delete soft deletes a plan. Callers must verify no company references
	// it first; the repository does not re-check.
	Delete(ctx context.Context, id uint) error
}
