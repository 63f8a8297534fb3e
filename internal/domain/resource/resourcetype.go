// Package resource provides the countable resource aggregate shared by every
// quota-capped record type a company owns. A resource counts against its
// company's plan while its is_active flag is set; deactivation is the only
// soft-delete mechanism.
package resource

import (
	"facturo/internal/domain/plan"
)

// Type identifies one countable resource kind.
type Type string

const (
	TypeEstablishment Type = "establishment"
	TypeEmissionPoint Type = "emission_point"
	TypeContact       Type = "contact"
	TypeWarehouse     Type = "warehouse"
	TypeSeller        Type = "seller"
)

// IsValid checks if the resource type is valid
func (t Type) IsValid() bool {
	switch t {
	case TypeEstablishment, TypeEmissionPoint, TypeContact, TypeWarehouse, TypeSeller:
		return true
	default:
		return false
	}
}

// String returns the string representation of the resource type
func (t Type) String() string {
	return string(t)
}

// limitKeys maps each resource type to the plan limit key that caps it.
// Contacts count against the total-users cap together with sellers.
var limitKeys = map[Type]plan.LimitKey{
	TypeEstablishment: plan.LimitMaxEstablishments,
	TypeEmissionPoint: plan.LimitMaxEmissionPoints,
	TypeWarehouse:     plan.LimitMaxWarehouses,
	TypeSeller:        plan.LimitMaxSellers,
	TypeContact:       plan.LimitMaxTotalUsers,
}

// LimitKey returns the plan limit key that caps this resource type.
func (t Type) LimitKey() plan.LimitKey {
	return limitKeys[t]
}

// AllTypes returns every countable resource type.
func AllTypes() []Type {
	return []Type{TypeEstablishment, TypeEmissionPoint, TypeContact, TypeWarehouse, TypeSeller}
}

// ParseType validates and converts a raw string into a Type.
func ParseType(raw string) (Type, error) {
	t := Type(raw)
	if !t.IsValid() {
		return "", ErrInvalidResourceType
	}
	return t, nil
}
