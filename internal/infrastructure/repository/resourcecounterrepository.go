package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"facturo/internal/domain/resource"
	"facturo/internal/infrastructure/persistence/models"
	"facturo/internal/shared/db"
	"facturo/internal/shared/logger"
)

// ResourceCounterRepositoryImpl counts active resources per company. The
// locking variant serializes quota checks for one company by taking the
// company row lock inside the caller's transaction.
type ResourceCounterRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewResourceCounterRepository(db *gorm.DB, logger logger.Interface) resource.Counter {
	return &ResourceCounterRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *ResourceCounterRepositoryImpl) CountActive(ctx context.Context, companyID uint, resourceType resource.Type) (int, error) {
	table, err := tableFor(resourceType)
	if err != nil {
		return 0, err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	return r.countActive(tx, table, companyID, resourceType)
}

// CountActiveForUpdate locks the company row before counting. All quota
// checks for one company funnel through this lock, so two transactions
// cannot both observe the last free slot. Must run inside a transaction;
// outside one the lock would release immediately and serialize nothing.
//
// The count itself is also a locking read. Under REPEATABLE READ a plain
// COUNT would run against the transaction's snapshot, which may predate
// acquiring the lock; rows committed by the transaction we waited on would
// be invisible and the check would pass one past the cap.
func (r *ResourceCounterRepositoryImpl) CountActiveForUpdate(ctx context.Context, companyID uint, resourceType resource.Type) (int, error) {
	table, err := tableFor(resourceType)
	if err != nil {
		return 0, err
	}

	tx := db.GetTxFromContext(ctx, r.db)

	var locked struct{ ID uint }
	err = tx.Model(&models.CompanyModel{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", companyID).
		Take(&locked).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, fmt.Errorf("failed to lock company %d: %w", companyID, err)
		}
		r.logger.Errorw("failed to lock company row for quota check",
			"error", err, "company_id", companyID)
		return 0, fmt.Errorf("failed to lock company %d: %w", companyID, err)
	}

	return r.countActive(tx.Clauses(clause.Locking{Strength: "UPDATE"}), table, companyID, resourceType)
}

func (r *ResourceCounterRepositoryImpl) countActive(tx *gorm.DB, table string, companyID uint, resourceType resource.Type) (int, error) {
	var count int64
	err := tx.Table(table).
		Scopes(db.OwnedBy(companyID), db.ActiveOnly()).
		Count(&count).Error

	if err != nil {
		r.logger.Errorw("failed to count active resources",
			"error", err, "resource_type", resourceType, "company_id", companyID)
		return 0, fmt.Errorf("failed to count active %s: %w", resourceType, err)
	}

	return int(count), nil
}
