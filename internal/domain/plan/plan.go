// Package plan provides the subscription plan aggregate and its limits document.
// A plan is a named bundle of quota caps companies subscribe to; its limits
// document evolves append-only through migrations.
package plan

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Plan is the subscription plan aggregate root.
type Plan struct {
	id          uint
	name        string
	slug        string
	description string
	status      Status
	limits      *LimitsDocument
	isPublic    bool
	sortOrder   int
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPlan creates a new plan. The name doubles as the lookup key for limits
// migrations, so it must be unique and stable.
func NewPlan(name, slug, description string, limits *LimitsDocument) (*Plan, error) {
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if slug == "" {
		return nil, fmt.Errorf("plan slug is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("plan name too long (max 100 characters)")
	}
	if limits == nil {
		limits = NewLimitsDocument(nil)
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Plan{
		name:        name,
		slug:        slug,
		description: description,
		status:      StatusActive,
		limits:      limits,
		isPublic:    true,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructPlan reconstructs a plan from persistence.
func ReconstructPlan(id uint, name, slug, description string, status string,
	limits *LimitsDocument, isPublic bool, sortOrder, version int,
	createdAt, updatedAt time.Time) (*Plan, error) {

	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	planStatus := Status(status)
	if planStatus != StatusActive && planStatus != StatusInactive {
		return nil, fmt.Errorf("invalid plan status: %s", status)
	}
	if limits == nil {
		limits = NewLimitsDocument(nil)
	}

	return &Plan{
		id:          id,
		name:        name,
		slug:        slug,
		description: description,
		status:      planStatus,
		limits:      limits,
		isPublic:    isPublic,
		sortOrder:   sortOrder,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (p *Plan) ID() uint {
	return p.id
}

// SetID sets the plan ID (only for persistence layer use)
func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Plan) Name() string            { return p.name }
func (p *Plan) Slug() string            { return p.slug }
func (p *Plan) Description() string     { return p.description }
func (p *Plan) Status() Status          { return p.status }
func (p *Plan) Limits() *LimitsDocument { return p.limits }
func (p *Plan) IsPublic() bool          { return p.isPublic }
func (p *Plan) SortOrder() int          { return p.sortOrder }
func (p *Plan) Version() int            { return p.version }
func (p *Plan) CreatedAt() time.Time    { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time    { return p.updatedAt }

// ResolveLimit returns the effective cap for a key via the limits document
// and its central fallback registry.
func (p *Plan) ResolveLimit(key LimitKey) int {
	return p.limits.Resolve(key)
}

// ApplyLimitsPatch merges the given key values into the limits document.
// Applying the same patch twice is a no-op beyond the first application: the
// version only bumps when a value actually changes.
func (p *Plan) ApplyLimitsPatch(patch map[LimitKey]int) (bool, error) {
	patched := p.limits.Clone()
	for k, v := range patch {
		patched.Set(k, v)
	}
	if err := patched.Validate(); err != nil {
		return false, err
	}
	if patched.Equal(p.limits) {
		return false, nil
	}
	p.limits = patched
	p.version++
	p.updatedAt = time.Now()
	return true, nil
}

// ReplaceLimits swaps the whole limits document. Used by migration steps,
// which compute the next document as a pure function of the current one.
func (p *Plan) ReplaceLimits(limits *LimitsDocument) (bool, error) {
	if limits == nil {
		limits = NewLimitsDocument(nil)
	}
	if err := limits.Validate(); err != nil {
		return false, err
	}
	if limits.Equal(p.limits) {
		return false, nil
	}
	p.limits = limits
	p.version++
	p.updatedAt = time.Now()
	return true, nil
}

// Deactivate hides the plan from new subscriptions. Existing companies keep
// resolving limits against it; plans are never deleted while referenced.
func (p *Plan) Deactivate() {
	if p.status == StatusInactive {
		return
	}
	p.status = StatusInactive
	p.version++
	p.updatedAt = time.Now()
}

// Activate makes the plan available again.
func (p *Plan) Activate() {
	if p.status == StatusActive {
		return
	}
	p.status = StatusActive
	p.version++
	p.updatedAt = time.Now()
}
