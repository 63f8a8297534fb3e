// Package company provides the tenant aggregate. Every company holds exactly
// one active subscription to a plan; its resources are quota-checked against
// that plan's limits document.
package company

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Company is the tenant aggregate root.
type Company struct {
	id        uint
	name      string
	planID    uint
	status    Status
	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewCompany creates a new company subscribed to the given plan.
func NewCompany(name string, planID uint) (*Company, error) {
	if name == "" {
		return nil, fmt.Errorf("company name is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}

	now := time.Now()
	return &Company{
		name:      name,
		planID:    planID,
		status:    StatusActive,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructCompany reconstructs a company from persistence.
func ReconstructCompany(id uint, name string, planID uint, status string,
	version int, createdAt, updatedAt time.Time) (*Company, error) {

	if id == 0 {
		return nil, fmt.Errorf("company ID cannot be zero")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	companyStatus := Status(status)
	if companyStatus != StatusActive && companyStatus != StatusSuspended {
		return nil, fmt.Errorf("invalid company status: %s", status)
	}

	return &Company{
		id:        id,
		name:      name,
		planID:    planID,
		status:    companyStatus,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (c *Company) ID() uint             { return c.id }
func (c *Company) Name() string         { return c.name }
func (c *Company) PlanID() uint         { return c.planID }
func (c *Company) Status() Status       { return c.status }
func (c *Company) Version() int         { return c.version }
func (c *Company) CreatedAt() time.Time { return c.createdAt }
func (c *Company) UpdatedAt() time.Time { return c.updatedAt }

// SetID sets the company ID (only for persistence layer use)
func (c *Company) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("company ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("company ID cannot be zero")
	}
	c.id = id
	return nil
}

// ChangePlan moves the company to a different plan. Quota evaluation picks up
// the new limits on the next check; no recount happens here.
func (c *Company) ChangePlan(planID uint) error {
	if planID == 0 {
		return fmt.Errorf("plan ID is required")
	}
	if planID == c.planID {
		return nil
	}
	c.planID = planID
	c.version++
	c.updatedAt = time.Now()
	return nil
}
