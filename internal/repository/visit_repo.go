package repository

import (
	"context"

	"oms-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisitRepository persists sales visit plans.
type VisitRepository interface {
	Create(ctx context.Context, plan *model.SalesVisitPlan) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SalesVisitPlan, error)
	Update(ctx context.Context, plan *model.SalesVisitPlan) error
	ListByOwner(ctx context.Context, salesRepID uuid.UUID) ([]model.SalesVisitPlan, error)
	ListAll(ctx context.Context) ([]model.SalesVisitPlan, error)
}

type visitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) Create(ctx context.Context, plan *model.SalesVisitPlan) error {
	return GetDB(ctx, r.db).Create(plan).Error
}

func (r *visitRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SalesVisitPlan, error) {
	var plan model.SalesVisitPlan
	if err := GetDB(ctx, r.db).First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *visitRepository) Update(ctx context.Context, plan *model.SalesVisitPlan) error {
	return GetDB(ctx, r.db).Save(plan).Error
}

func (r *visitRepository) ListByOwner(ctx context.Context, salesRepID uuid.UUID) ([]model.SalesVisitPlan, error) {
	var plans []model.SalesVisitPlan
	if err := GetDB(ctx, r.db).
		Where("sales_rep_id = ?", salesRepID).
		Order("visit_date ASC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *visitRepository) ListAll(ctx context.Context) ([]model.SalesVisitPlan, error) {
	var plans []model.SalesVisitPlan
	if err := GetDB(ctx, r.db).
		Preload("SalesRep").
		Order("visit_date ASC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}
