package company

import "errors"

var (
	// ErrCompanyNotFound is returned when a company is not found
	ErrCompanyNotFound = errors.New("company not found")

	// ErrCompanySuspended is returned when a suspended company attempts a gated action
	ErrCompanySuspended = errors.New("company is suspended")
)
