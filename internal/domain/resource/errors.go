package resource

import "errors"

var (
	// ErrResourceNotFound is returned when a resource is not found
	ErrResourceNotFound = errors.New("resource not found")

	// ErrInvalidResourceType is returned when an invalid resource type is provided
	ErrInvalidResourceType = errors.New("invalid resource type")

	// ErrResourceInactive is returned when deactivating an already inactive resource
	ErrResourceInactive = errors.New("resource is already inactive")

	// ErrResourceAlreadyActive is returned when reactivating an active resource
	ErrResourceAlreadyActive = errors.New("resource is already active")
)
