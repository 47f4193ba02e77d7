package repository

import (
	"context"

	"oms-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceRepository owns clock-in/out session rows. The open-record lookup
// variants differ only in locking: ForUpdate is used inside mutating
// transactions so concurrent clock-outs and overrides serialize.
type AttendanceRepository interface {
	Create(ctx context.Context, record *model.AttendanceRecord) error
	FindOpenByUser(ctx context.Context, userID uuid.UUID) (*model.AttendanceRecord, error)
	FindOpenByUserForUpdate(ctx context.Context, userID uuid.UUID) (*model.AttendanceRecord, error)
	Update(ctx context.Context, record *model.AttendanceRecord) error
	CountOpen(ctx context.Context) (int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, record *model.AttendanceRecord) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *attendanceRepository) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	if err := GetDB(ctx, r.db).
		Where("user_id = ? AND clock_out_time IS NULL", userID).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepository) FindOpenByUserForUpdate(ctx context.Context, userID uuid.UUID) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	if err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND clock_out_time IS NULL", userID).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepository) Update(ctx context.Context, record *model.AttendanceRecord) error {
	return GetDB(ctx, r.db).Save(record).Error
}

func (r *attendanceRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.AttendanceRecord{}).
		Where("clock_out_time IS NULL").
		Count(&count).Error
	return count, err
}
