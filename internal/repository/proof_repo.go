package repository

import (
	"context"

	"oms-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProofRepository appends proof-of-execution records and GPS pings. Both
// streams are append-only: there are no update or delete methods on purpose.
type ProofRepository interface {
	CreateProof(ctx context.Context, proof *model.ProofOfExecutionRecord) error
	ListProofsByOrder(ctx context.Context, orderID uuid.UUID) ([]model.ProofOfExecutionRecord, error)
	CreatePing(ctx context.Context, ping *model.GPSTrackingPing) error
	ListPings(ctx context.Context, page, limit int) ([]model.GPSTrackingPing, int64, error)
}

type proofRepository struct {
	db *gorm.DB
}

func NewProofRepository(db *gorm.DB) ProofRepository {
	return &proofRepository{db: db}
}

func (r *proofRepository) CreateProof(ctx context.Context, proof *model.ProofOfExecutionRecord) error {
	return GetDB(ctx, r.db).Create(proof).Error
}

func (r *proofRepository) ListProofsByOrder(ctx context.Context, orderID uuid.UUID) ([]model.ProofOfExecutionRecord, error) {
	var proofs []model.ProofOfExecutionRecord
	if err := GetDB(ctx, r.db).
		Preload("ExecutedBy").
		Where("order_id = ?", orderID).
		Order("executed_at ASC").
		Find(&proofs).Error; err != nil {
		return nil, err
	}
	return proofs, nil
}

func (r *proofRepository) CreatePing(ctx context.Context, ping *model.GPSTrackingPing) error {
	return GetDB(ctx, r.db).Create(ping).Error
}

func (r *proofRepository) ListPings(ctx context.Context, page, limit int) ([]model.GPSTrackingPing, int64, error) {
	var pings []model.GPSTrackingPing
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.GPSTrackingPing{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("User").
		Order("recorded_at DESC").
		Offset(offset).Limit(limit).
		Find(&pings).Error; err != nil {
		return nil, 0, err
	}

	return pings, total, nil
}
