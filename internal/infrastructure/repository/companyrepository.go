package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"facturo/internal/domain/company"
	"facturo/internal/infrastructure/persistence/models"
	"facturo/internal/shared/db"
	"facturo/internal/shared/logger"
)

type CompanyRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewCompanyRepository(db *gorm.DB, logger logger.Interface) company.Repository {
	return &CompanyRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *CompanyRepositoryImpl) Create(ctx context.Context, c *company.Company) error {
	model := r.toModel(c)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create company", "error", err, "name", c.Name())
		return fmt.Errorf("failed to create company: %w", err)
	}

	if err := c.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("company created successfully", "company_id", model.ID, "plan_id", c.PlanID())
	return nil
}

func (r *CompanyRepositoryImpl) Update(ctx context.Context, c *company.Company) error {
	model := r.toModel(c)

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.CompanyModel{}).
		Where("id = ?", c.ID()).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"plan_id":    model.PlanID,
			"status":     model.Status,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update company", "error", result.Error, "company_id", c.ID())
		return fmt.Errorf("failed to update company: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return company.ErrCompanyNotFound
	}

	r.logger.Infow("company updated successfully", "company_id", c.ID())
	return nil
}

func (r *CompanyRepositoryImpl) GetByID(ctx context.Context, id uint) (*company.Company, error) {
	var model models.CompanyModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get company by ID", "error", err, "company_id", id)
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return r.toEntity(&model)
}

func (r *CompanyRepositoryImpl) CountByPlan(ctx context.Context, planID uint) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.CompanyModel{}).
		Where("plan_id = ?", planID).
		Count(&count).Error

	if err != nil {
		r.logger.Errorw("failed to count companies by plan", "error", err, "plan_id", planID)
		return 0, fmt.Errorf("failed to count companies by plan: %w", err)
	}

	return count, nil
}

func (r *CompanyRepositoryImpl) toEntity(model *models.CompanyModel) (*company.Company, error) {
	if model == nil {
		return nil, nil
	}

	return company.ReconstructCompany(
		model.ID,
		model.Name,
		model.PlanID,
		model.Status,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (r *CompanyRepositoryImpl) toModel(c *company.Company) *models.CompanyModel {
	return &models.CompanyModel{
		ID:        c.ID(),
		Name:      c.Name(),
		PlanID:    c.PlanID(),
		Status:    string(c.Status()),
		Version:   c.Version(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}
