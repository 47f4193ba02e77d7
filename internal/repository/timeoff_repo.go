package repository

import (
	"context"

	"oms-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TimeOffRepository persists leave requests. FindPendingForManagerForUpdate
// scopes by manager AND pending status in the query itself, so a stale or
// foreign request simply does not resolve.
type TimeOffRepository interface {
	Create(ctx context.Context, request *model.TimeOffRequest) error
	FindPendingForManagerForUpdate(ctx context.Context, id, managerID uuid.UUID) (*model.TimeOffRequest, error)
	Update(ctx context.Context, request *model.TimeOffRequest) error
	ListPendingByManager(ctx context.Context, managerID uuid.UUID) ([]model.TimeOffRequest, error)
	CountPending(ctx context.Context) (int64, error)
}

type timeOffRepository struct {
	db *gorm.DB
}

func NewTimeOffRepository(db *gorm.DB) TimeOffRepository {
	return &timeOffRepository{db: db}
}

func (r *timeOffRepository) Create(ctx context.Context, request *model.TimeOffRequest) error {
	return GetDB(ctx, r.db).Create(request).Error
}

func (r *timeOffRepository) FindPendingForManagerForUpdate(ctx context.Context, id, managerID uuid.UUID) (*model.TimeOffRequest, error) {
	var request model.TimeOffRequest
	if err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND manager_id = ? AND status = ?", id, managerID, model.TimeOffStatusRequest).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *timeOffRepository) Update(ctx context.Context, request *model.TimeOffRequest) error {
	return GetDB(ctx, r.db).Save(request).Error
}

func (r *timeOffRepository) ListPendingByManager(ctx context.Context, managerID uuid.UUID) ([]model.TimeOffRequest, error) {
	var requests []model.TimeOffRequest
	if err := GetDB(ctx, r.db).
		Preload("User").
		Where("manager_id = ? AND status = ?", managerID, model.TimeOffStatusRequest).
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *timeOffRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.TimeOffRequest{}).
		Where("status = ?", model.TimeOffStatusRequest).
		Count(&count).Error
	return count, err
}
