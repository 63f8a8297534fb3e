package dto

import (
	"time"

	"facturo/internal/domain/plan"
)

// PlanDTO represents a subscription plan
type PlanDTO struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description,omitempty"`
	Status      string         `json:"status"`
	IsPublic    bool           `json:"is_public"`
	Limits      map[string]int `json:"limits"`
	// EffectiveLimits carries every known key resolved through the fallback
	// rules, so clients never re-implement them.
	EffectiveLimits map[string]int `json:"effective_limits"`
	Version         int            `json:"version"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// ToPlanDTO converts a domain plan
func ToPlanDTO(p *plan.Plan) *PlanDTO {
	if p == nil {
		return nil
	}
	effective := make(map[string]int)
	for _, key := range plan.KnownLimitKeys() {
		effective[key.String()] = p.ResolveLimit(key)
	}
	return &PlanDTO{
		ID:              p.ID(),
		Name:            p.Name(),
		Slug:            p.Slug(),
		Description:     p.Description(),
		Status:          string(p.Status()),
		IsPublic:        p.IsPublic(),
		Limits:          p.Limits().Values(),
		EffectiveLimits: effective,
		Version:         p.Version(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
}

// ToPlanDTOs converts a slice of domain plans
func ToPlanDTOs(plans []*plan.Plan) []*PlanDTO {
	out := make([]*PlanDTO, 0, len(plans))
	for _, p := range plans {
		out = append(out, ToPlanDTO(p))
	}
	return out
}
