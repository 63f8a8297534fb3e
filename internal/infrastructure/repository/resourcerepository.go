package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"facturo/internal/domain/resource"
	"facturo/internal/infrastructure/persistence/models"
	"facturo/internal/shared/db"
	"facturo/internal/shared/logger"
)

// resourceRow is the shared row shape of all countable resource tables.
// The repository dispatches on the aggregate's type to pick the table.
type resourceRow struct {
	ID        uint `gorm:"primarykey"`
	CompanyID uint
	Name      string
	Code      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ResourceRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewResourceRepository(db *gorm.DB, logger logger.Interface) resource.Repository {
	return &ResourceRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func tableFor(resourceType resource.Type) (string, error) {
	table, ok := models.ResourceTableName(resourceType.String())
	if !ok {
		return "", fmt.Errorf("no table mapped for resource type %q", resourceType)
	}
	return table, nil
}

func (r *ResourceRepositoryImpl) Create(ctx context.Context, res *resource.Resource) error {
	table, err := tableFor(res.ResourceType())
	if err != nil {
		return err
	}

	row := r.toRow(res)
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Table(table).Create(row).Error; err != nil {
		r.logger.Errorw("failed to create resource",
			"error", err, "resource_type", res.ResourceType(), "company_id", res.CompanyID())
		return fmt.Errorf("failed to create %s: %w", res.ResourceType(), err)
	}

	if err := res.SetID(row.ID); err != nil {
		return err
	}

	return nil
}

func (r *ResourceRepositoryImpl) Update(ctx context.Context, res *resource.Resource) error {
	table, err := tableFor(res.ResourceType())
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Table(table).
		Where("id = ?", res.ID()).
		Updates(map[string]interface{}{
			"name":       res.Name(),
			"code":       res.Code(),
			"is_active":  res.IsActive(),
			"updated_at": res.UpdatedAt(),
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update resource",
			"error", result.Error, "resource_type", res.ResourceType(), "resource_id", res.ID())
		return fmt.Errorf("failed to update %s: %w", res.ResourceType(), result.Error)
	}
	if result.RowsAffected == 0 {
		return resource.ErrResourceNotFound
	}

	return nil
}

func (r *ResourceRepositoryImpl) GetByID(ctx context.Context, resourceType resource.Type, id uint) (*resource.Resource, error) {
	table, err := tableFor(resourceType)
	if err != nil {
		return nil, err
	}

	var row resourceRow
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Table(table).Where("id = ?", id).Take(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get resource by ID",
			"error", err, "resource_type", resourceType, "resource_id", id)
		return nil, fmt.Errorf("failed to get %s: %w", resourceType, err)
	}

	return r.toEntity(resourceType, &row)
}

func (r *ResourceRepositoryImpl) ListByCompany(ctx context.Context, companyID uint, resourceType resource.Type, includeInactive bool) ([]*resource.Resource, error) {
	table, err := tableFor(resourceType)
	if err != nil {
		return nil, err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Table(table).Scopes(db.OwnedBy(companyID))
	if !includeInactive {
		query = query.Scopes(db.ActiveOnly())
	}

	var rows []*resourceRow
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list resources",
			"error", err, "resource_type", resourceType, "company_id", companyID)
		return nil, fmt.Errorf("failed to list %s: %w", resourceType, err)
	}

	resources := make([]*resource.Resource, 0, len(rows))
	for _, row := range rows {
		res, err := r.toEntity(resourceType, row)
		if err != nil {
			return nil, fmt.Errorf("failed to convert row ID %d: %w", row.ID, err)
		}
		resources = append(resources, res)
	}

	return resources, nil
}

func (r *ResourceRepositoryImpl) toEntity(resourceType resource.Type, row *resourceRow) (*resource.Resource, error) {
	if row == nil {
		return nil, nil
	}

	return resource.ReconstructResource(
		row.ID,
		row.CompanyID,
		resourceType,
		row.Name,
		row.Code,
		row.IsActive,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func (r *ResourceRepositoryImpl) toRow(res *resource.Resource) *resourceRow {
	return &resourceRow{
		ID:        res.ID(),
		CompanyID: res.CompanyID(),
		Name:      res.Name(),
		Code:      res.Code(),
		IsActive:  res.IsActive(),
		CreatedAt: res.CreatedAt(),
		UpdatedAt: res.UpdatedAt(),
	}
}
