// Package quota provides the entitlement decision model. Evaluate combines a
// live resource count with a resolved plan limit into an allowed/remaining
// answer; it is the single place the unlimited sentinel and exhaustion
// arithmetic are interpreted.
package quota

import (
	"facturo/internal/domain/plan"
)

// Evaluation is an entitlement decision for one company and resource type.
type Evaluation struct {
	Count     int  `json:"count"`
	Limit     int  `json:"limit"`
	Allowed   bool `json:"allowed"`
	Remaining int  `json:"remaining"`
}

// Unlimited reports whether the evaluated limit is the unlimited sentinel.
func (e Evaluation) Unlimited() bool {
	return e.Limit == plan.Unlimited
}

// IsValidLimit reports whether a stored limit value lies in the legal domain:
// a non-negative cap or the unlimited sentinel. Anything else is invalid plan
// data and gets clamped by Evaluate.
func IsValidLimit(limit int) bool {
	return limit >= 0 || limit == plan.Unlimited
}

// Evaluate computes the entitlement decision from a count and a limit.
// All arithmetic is integer. An unlimited limit always allows and reports
// remaining as the sentinel, never as a large finite number. A zero limit is
// a legal exhausted cap. Negative values other than the sentinel are clamped
// to unlimited rather than propagated as a negative remaining; callers should
// check IsValidLimit first if they want to log the bad value.
func Evaluate(count, limit int) Evaluation {
	if !IsValidLimit(limit) {
		limit = plan.Unlimited
	}

	if limit == plan.Unlimited {
		return Evaluation{
			Count:     count,
			Limit:     plan.Unlimited,
			Allowed:   true,
			Remaining: plan.Unlimited,
		}
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return Evaluation{
		Count:     count,
		Limit:     limit,
		Allowed:   count < limit,
		Remaining: remaining,
	}
}

// FailOpen is the documented degradation value for the read-only limit-info
// path: report as unlimited and empty rather than surfacing an error the UI
// cannot act on. The write path must never use this.
func FailOpen() Evaluation {
	return Evaluate(0, plan.Unlimited)
}
