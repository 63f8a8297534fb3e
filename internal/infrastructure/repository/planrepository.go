package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"facturo/internal/domain/plan"
	"facturo/internal/infrastructure/persistence/models"
	"facturo/internal/shared/db"
	"facturo/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) plan.Repository {
	return &PlanRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, p *plan.Plan) error {
	model, err := r.toModel(p)
	if err != nil {
		r.logger.Errorw("failed to convert plan to model", "error", err)
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan", "error", err, "slug", p.Slug())
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if err := p.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("plan created successfully", "plan_id", model.ID, "slug", p.Slug())
	return nil
}

// Update persists the plan guarded by its version column: the row is only
// written when the stored version is still below the aggregate's, so a
// concurrent writer that already bumped it surfaces as ErrVersionConflict
// instead of being silently overwritten.
func (r *PlanRepositoryImpl) Update(ctx context.Context, p *plan.Plan) error {
	model, err := r.toModel(p)
	if err != nil {
		r.logger.Errorw("failed to convert plan to model", "error", err)
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.PlanModel{}).
		Where("id = ? AND version < ?", p.ID(), model.Version).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"description": model.Description,
			"status":      model.Status,
			"limits":      model.Limits,
			"is_public":   model.IsPublic,
			"sort_order":  model.SortOrder,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update plan", "error", result.Error, "plan_id", p.ID())
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.PlanModel{}).Where("id = ?", p.ID()).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check plan existence: %w", err)
		}
		if count == 0 {
			return plan.ErrPlanNotFound
		}
		r.logger.Warnw("plan version conflict on update", "plan_id", p.ID(), "version", model.Version)
		return plan.ErrVersionConflict
	}

	r.logger.Infow("plan updated successfully", "plan_id", p.ID(), "version", model.Version)
	return nil
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*plan.Plan, error) {
	var model models.PlanModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by ID", "error", err, "plan_id", id)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return r.toEntity(&model)
}

func (r *PlanRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*plan.Plan, error) {
	var model models.PlanModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("slug = ?", slug).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by slug", "error", err, "slug", slug)
		return nil, fmt.Errorf("failed to get plan by slug: %w", err)
	}

	return r.toEntity(&model)
}

func (r *PlanRepositoryImpl) GetByName(ctx context.Context, name string) (*plan.Plan, error) {
	var model models.PlanModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("name = ?", name).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by name", "error", err, "name", name)
		return nil, fmt.Errorf("failed to get plan by name: %w", err)
	}

	return r.toEntity(&model)
}

func (r *PlanRepositoryImpl) ListPublic(ctx context.Context) ([]*plan.Plan, error) {
	var planModels []*models.PlanModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND is_public = ?", plan.StatusActive, true).
		Order("sort_order ASC, created_at DESC").
		Find(&planModels).Error

	if err != nil {
		r.logger.Errorw("failed to list public plans", "error", err)
		return nil, fmt.Errorf("failed to list public plans: %w", err)
	}

	return r.toEntities(planModels)
}

func (r *PlanRepositoryImpl) ListAll(ctx context.Context) ([]*plan.Plan, error) {
	var planModels []*models.PlanModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Order("id ASC").Find(&planModels).Error; err != nil {
		r.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	return r.toEntities(planModels)
}

func (r *PlanRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.PlanModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete plan", "error", result.Error, "plan_id", id)
		return fmt.Errorf("failed to delete plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return plan.ErrPlanNotFound
	}

	r.logger.Infow("plan deleted", "plan_id", id)
	return nil
}

func (r *PlanRepositoryImpl) toEntity(model *models.PlanModel) (*plan.Plan, error) {
	if model == nil {
		return nil, nil
	}

	var limits *plan.LimitsDocument
	if len(model.Limits) > 0 {
		var raw map[string]int
		if err := json.Unmarshal(model.Limits, &raw); err != nil {
			r.logger.Errorw("failed to unmarshal plan limits", "error", err, "plan_id", model.ID)
			return nil, fmt.Errorf("failed to unmarshal plan limits: %w", err)
		}
		limits = plan.NewLimitsDocumentFromRaw(raw)
	}

	return plan.ReconstructPlan(
		model.ID,
		model.Name,
		model.Slug,
		model.Description,
		model.Status,
		limits,
		model.IsPublic,
		model.SortOrder,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (r *PlanRepositoryImpl) toModel(p *plan.Plan) (*models.PlanModel, error) {
	if p == nil {
		return nil, nil
	}

	limitsJSON, err := json.Marshal(p.Limits().Values())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan limits: %w", err)
	}

	return &models.PlanModel{
		ID:          p.ID(),
		Name:        p.Name(),
		Slug:        p.Slug(),
		Description: p.Description(),
		Status:      string(p.Status()),
		Limits:      limitsJSON,
		IsPublic:    p.IsPublic(),
		SortOrder:   p.SortOrder(),
		Version:     p.Version(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}, nil
}

func (r *PlanRepositoryImpl) toEntities(planModels []*models.PlanModel) ([]*plan.Plan, error) {
	plans := make([]*plan.Plan, 0, len(planModels))

	for _, model := range planModels {
		p, err := r.toEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert model ID %d: %w", model.ID, err)
		}
		if p != nil {
			plans = append(plans, p)
		}
	}

	return plans, nil
}
