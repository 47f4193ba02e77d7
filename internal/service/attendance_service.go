package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oms-backend/internal/model"
	"oms-backend/internal/repository"
	"oms-backend/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DTOs

type AttendanceResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	ClockInTime     string  `json:"clock_in_time"`
	ClockOutTime    *string `json:"clock_out_time"`
	Status          string  `json:"status"`
	DurationMinutes *int    `json:"duration_minutes"`
}

type AttendanceStatusResponse struct {
	ClockedIn bool                `json:"clocked_in"`
	Record    *AttendanceResponse `json:"record,omitempty"`
}

// AttendanceService owns clock-in/out sessions. The "at most one open record
// per user" invariant lives in the pre-checks here, executed inside the same
// transaction as the write.
type AttendanceService interface {
	ClockIn(ctx context.Context, userID uuid.UUID) (AttendanceResponse, error)
	ClockOut(ctx context.Context, userID uuid.UUID) (AttendanceResponse, error)
	Status(ctx context.Context, userID uuid.UUID) (AttendanceStatusResponse, error)
}

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	txManager      repository.TransactionManager
	now            func() time.Time
}

func NewAttendanceService(attendanceRepo repository.AttendanceRepository, txManager repository.TransactionManager) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		txManager:      txManager,
		now:            time.Now,
	}
}

func toAttendanceResponse(record *model.AttendanceRecord) AttendanceResponse {
	res := AttendanceResponse{
		ID:              record.ID.String(),
		UserID:          record.UserID.String(),
		ClockInTime:     record.ClockInTime.Format(time.RFC3339),
		Status:          record.Status,
		DurationMinutes: record.DurationMinutes,
	}
	if record.ClockOutTime != nil {
		out := record.ClockOutTime.Format(time.RFC3339)
		res.ClockOutTime = &out
	}
	return res
}

func (s *attendanceService) ClockIn(ctx context.Context, userID uuid.UUID) (AttendanceResponse, error) {
	record := model.AttendanceRecord{
		UserID:      userID,
		ClockInTime: s.now(),
		Status:      model.AttendanceAvailable,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		_, findErr := s.attendanceRepo.FindOpenByUserForUpdate(txCtx, userID)
		if findErr == nil {
			return apperr.Conflict("already clocked in: an open attendance record exists")
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check open attendance: %w", findErr)
		}

		if createErr := s.attendanceRepo.Create(txCtx, &record); createErr != nil {
			return fmt.Errorf("failed to create attendance record: %w", createErr)
		}
		return nil
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	return toAttendanceResponse(&record), nil
}

func (s *attendanceService) ClockOut(ctx context.Context, userID uuid.UUID) (AttendanceResponse, error) {
	var record *model.AttendanceRecord

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		open, findErr := s.attendanceRepo.FindOpenByUserForUpdate(txCtx, userID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return apperr.NotFound("no open attendance record to clock out")
			}
			return fmt.Errorf("failed to find open attendance: %w", findErr)
		}

		now := s.now()
		// Duration is fixed here and never recomputed, even if the record is
		// edited later.
		minutes := int(now.Sub(open.ClockInTime).Minutes())
		open.ClockOutTime = &now
		open.DurationMinutes = &minutes

		if updateErr := s.attendanceRepo.Update(txCtx, open); updateErr != nil {
			return fmt.Errorf("failed to close attendance record: %w", updateErr)
		}
		record = open
		return nil
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	return toAttendanceResponse(record), nil
}

func (s *attendanceService) Status(ctx context.Context, userID uuid.UUID) (AttendanceStatusResponse, error) {
	open, err := s.attendanceRepo.FindOpenByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceStatusResponse{ClockedIn: false}, nil
		}
		return AttendanceStatusResponse{}, fmt.Errorf("failed to query attendance status: %w", err)
	}

	res := toAttendanceResponse(open)
	return AttendanceStatusResponse{ClockedIn: true, Record: &res}, nil
}
