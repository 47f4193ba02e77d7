package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"oms-backend/internal/model"
	"oms-backend/internal/repository"
	ws "oms-backend/internal/websocket"
	"oms-backend/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DTOs

type OverrideRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	NewStatus    string `json:"new_status" binding:"required"`
	StatusReason string `json:"status_reason" binding:"required"`
}

type OverrideResponse struct {
	UserID    string `json:"user_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	AuditID   string `json:"audit_id"`
}

// OverrideService lets managers force an on-shift employee's status to
// Unavailable. The status mutation and the audit row are one atomic unit;
// an override without its audit trail must never exist.
type OverrideService interface {
	Override(ctx context.Context, actor Actor, req OverrideRequest) (OverrideResponse, error)
	ListAudits(ctx context.Context, page, limit int) ([]model.StaffStatusAudit, int64, error)
}

type overrideService struct {
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRepository
	auditRepo      repository.StatusAuditRepository
	txManager      repository.TransactionManager
	hub            *ws.Hub
}

func NewOverrideService(
	userRepo repository.UserRepository,
	attendanceRepo repository.AttendanceRepository,
	auditRepo repository.StatusAuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) OverrideService {
	return &overrideService{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		auditRepo:      auditRepo,
		txManager:      txManager,
		hub:            hub,
	}
}

func (s *overrideService) Override(ctx context.Context, actor Actor, req OverrideRequest) (OverrideResponse, error) {
	if !actor.Can(model.OverrideRoles) {
		return OverrideResponse{}, apperr.Authorization("insufficient role for status override")
	}
	// Unavailable is the only permitted override target.
	if req.NewStatus != model.AttendanceUnavailable {
		return OverrideResponse{}, apperr.Newf(apperr.KindValidation, "override target must be %q", model.AttendanceUnavailable)
	}
	if strings.TrimSpace(req.StatusReason) == "" {
		return OverrideResponse{}, apperr.Validation("status_reason is required")
	}

	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		return OverrideResponse{}, apperr.Validation("invalid user_id")
	}

	var res OverrideResponse
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, userErr := s.userRepo.GetByID(txCtx, targetID); userErr != nil {
			if errors.Is(userErr, gorm.ErrRecordNotFound) {
				return apperr.NotFound("target user not found")
			}
			return fmt.Errorf("failed to load target user: %w", userErr)
		}

		open, findErr := s.attendanceRepo.FindOpenByUserForUpdate(txCtx, targetID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return apperr.NotFound("target user has no open attendance record")
			}
			return fmt.Errorf("failed to load open attendance: %w", findErr)
		}

		oldStatus := open.Status
		open.Status = req.NewStatus
		if updateErr := s.attendanceRepo.Update(txCtx, open); updateErr != nil {
			return fmt.Errorf("failed to update attendance status: %w", updateErr)
		}

		audit := model.StaffStatusAudit{
			UserID:       targetID,
			ChangedByID:  actor.ID,
			OldStatus:    oldStatus,
			NewStatus:    req.NewStatus,
			StatusReason: strings.TrimSpace(req.StatusReason),
		}
		if auditErr := s.auditRepo.Create(txCtx, &audit); auditErr != nil {
			return fmt.Errorf("failed to write status audit: %w", auditErr)
		}

		res = OverrideResponse{
			UserID:    targetID.String(),
			OldStatus: oldStatus,
			NewStatus: req.NewStatus,
			AuditID:   audit.ID.String(),
		}
		return nil
	})
	if err != nil {
		return OverrideResponse{}, err
	}

	if s.hub != nil {
		s.hub.Publish("attendance.overridden", map[string]interface{}{
			"user_id":    res.UserID,
			"new_status": res.NewStatus,
		})
	}

	return res, nil
}

func (s *overrideService) ListAudits(ctx context.Context, page, limit int) ([]model.StaffStatusAudit, int64, error) {
	audits, total, err := s.auditRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list status audits: %w", err)
	}
	return audits, total, nil
}
