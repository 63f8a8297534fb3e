package dto

import "facturo/internal/domain/quota"

// LimitInfoDTO is the client-facing limit projection. A limit of -1 means
// unlimited.
type LimitInfoDTO struct {
	Count int `json:"count"`
	Limit int `json:"limit"`
}

// EvaluationDTO carries a full entitlement decision.
type EvaluationDTO struct {
	Count     int  `json:"count"`
	Limit     int  `json:"limit"`
	Allowed   bool `json:"allowed"`
	Remaining int  `json:"remaining"`
}

// ToLimitInfoDTO projects an evaluation down to the read-path payload.
func ToLimitInfoDTO(e quota.Evaluation) *LimitInfoDTO {
	return &LimitInfoDTO{Count: e.Count, Limit: e.Limit}
}

// ToEvaluationDTO converts a domain evaluation.
func ToEvaluationDTO(e quota.Evaluation) *EvaluationDTO {
	return &EvaluationDTO{
		Count:     e.Count,
		Limit:     e.Limit,
		Allowed:   e.Allowed,
		Remaining: e.Remaining,
	}
}
