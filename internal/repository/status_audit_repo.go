package repository

import (
	"context"

	"oms-backend/internal/model"

	"gorm.io/gorm"
)

// StatusAuditRepository appends staff-status override records. Append-only.
type StatusAuditRepository interface {
	Create(ctx context.Context, audit *model.StaffStatusAudit) error
	List(ctx context.Context, page, limit int) ([]model.StaffStatusAudit, int64, error)
}

type statusAuditRepository struct {
	db *gorm.DB
}

func NewStatusAuditRepository(db *gorm.DB) StatusAuditRepository {
	return &statusAuditRepository{db: db}
}

func (r *statusAuditRepository) Create(ctx context.Context, audit *model.StaffStatusAudit) error {
	return GetDB(ctx, r.db).Create(audit).Error
}

func (r *statusAuditRepository) List(ctx context.Context, page, limit int) ([]model.StaffStatusAudit, int64, error) {
	var audits []model.StaffStatusAudit
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.StaffStatusAudit{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("User").
		Preload("ChangedBy").
		Order("change_time DESC").
		Offset(offset).Limit(limit).
		Find(&audits).Error; err != nil {
		return nil, 0, err
	}

	return audits, total, nil
}
