package usecases

import (
	"context"

	"facturo/internal/domain/quota"
	"facturo/internal/domain/resource"
)

// TxRunner executes a function inside one database transaction.
// Satisfied by db.TransactionManager.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EntitlementGate is the quota enforcement point consumed by resource
// lifecycle use cases. Satisfied by the application quota Gate.
type EntitlementGate interface {
	Check(ctx context.Context, companyID uint, resourceType resource.Type) (quota.Evaluation, error)
}
