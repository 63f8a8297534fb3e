package quota

import (
	"errors"
	"fmt"
)

// ExceededError is the business-rule rejection for an exhausted quota. It is
// an expected, frequent outcome, carried as a structured result with the
// numeric context needed to render a precise message.
type ExceededError struct {
	ResourceType string
	Count        int
	Limit        int
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("quota exceeded for %s: %d of %d in use", e.ResourceType, e.Count, e.Limit)
}

// NewExceededError creates a quota exceeded error for a resource type.
func NewExceededError(resourceType string, count, limit int) *ExceededError {
	return &ExceededError{ResourceType: resourceType, Count: count, Limit: limit}
}

// AsExceeded checks whether err is an *ExceededError and returns it.
func AsExceeded(err error) (*ExceededError, bool) {
	var exceeded *ExceededError
	if errors.As(err, &exceeded) {
		return exceeded, true
	}
	return nil, false
}
