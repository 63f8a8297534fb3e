package resource

import (
	"fmt"
	"time"
)

// Resource is the countable resource aggregate. Every kind (establishment,
// emission point, contact, warehouse, seller) shares this shape: it belongs
// to exactly one company and carries the is_active soft-delete flag.
type Resource struct {
	id           uint
	companyID    uint
	resourceType Type
	name         string
	code         string
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewResource creates a new active resource. Callers must pass the
// entitlement gate before persisting it.
func NewResource(companyID uint, resourceType Type, name, code string) (*Resource, error) {
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}
	if !resourceType.IsValid() {
		return nil, fmt.Errorf("invalid resource type: %s", resourceType)
	}
	if name == "" {
		return nil, fmt.Errorf("resource name is required")
	}

	now := time.Now()
	return &Resource{
		companyID:    companyID,
		resourceType: resourceType,
		name:         name,
		code:         code,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructResource reconstructs a resource from persistence.
func ReconstructResource(id, companyID uint, resourceType Type, name, code string,
	isActive bool, createdAt, updatedAt time.Time) (*Resource, error) {

	if id == 0 {
		return nil, fmt.Errorf("resource ID cannot be zero")
	}
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}
	if !resourceType.IsValid() {
		return nil, fmt.Errorf("invalid resource type: %s", resourceType)
	}

	return &Resource{
		id:           id,
		companyID:    companyID,
		resourceType: resourceType,
		name:         name,
		code:         code,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (r *Resource) ID() uint             { return r.id }
func (r *Resource) CompanyID() uint      { return r.companyID }
func (r *Resource) ResourceType() Type   { return r.resourceType }
func (r *Resource) Name() string         { return r.name }
func (r *Resource) Code() string         { return r.code }
func (r *Resource) IsActive() bool       { return r.isActive }
func (r *Resource) CreatedAt() time.Time { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time { return r.updatedAt }

// SetID sets the resource ID (only for persistence layer use)
func (r *Resource) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("resource ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("resource ID cannot be zero")
	}
	r.id = id
	return nil
}

// Deactivate soft-deletes the resource. The row stays; only the flag flips,
// and the resource stops counting against quota.
func (r *Resource) Deactivate() error {
	if !r.isActive {
		return ErrResourceInactive
	}
	r.isActive = false
	r.updatedAt = time.Now()
	return nil
}

// Reactivate flips the flag back. Callers must re-enter the entitlement gate
// exactly as for creation before persisting this.
func (r *Resource) Reactivate() error {
	if r.isActive {
		return ErrResourceAlreadyActive
	}
	r.isActive = true
	r.updatedAt = time.Now()
	return nil
}
