package dto

import (
	"time"

	"facturo/internal/domain/resource"
)

// CreateResourceRequest represents the request to create a countable resource
type CreateResourceRequest struct {
	CompanyID    uint   `json:"company_id"`
	ResourceType string `json:"resource_type"`
	Name         string `json:"name" binding:"required"`
	Code         string `json:"code"`
}

// ResourceDTO represents a countable resource
type ResourceDTO struct {
	ID           uint      `json:"id"`
	CompanyID    uint      `json:"company_id"`
	ResourceType string    `json:"resource_type"`
	Name         string    `json:"name"`
	Code         string    `json:"code,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToResourceDTO converts a domain resource
func ToResourceDTO(r *resource.Resource) *ResourceDTO {
	if r == nil {
		return nil
	}
	return &ResourceDTO{
		ID:           r.ID(),
		CompanyID:    r.CompanyID(),
		ResourceType: r.ResourceType().String(),
		Name:         r.Name(),
		Code:         r.Code(),
		IsActive:     r.IsActive(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
}

// ToResourceDTOs converts a slice of domain resources
func ToResourceDTOs(resources []*resource.Resource) []*ResourceDTO {
	out := make([]*ResourceDTO, 0, len(resources))
	for _, r := range resources {
		out = append(out, ToResourceDTO(r))
	}
	return out
}
