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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DTOs

type TimeOffRequestDTO struct {
	StartDate   string          `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate     string          `json:"end_date" binding:"required"`
	RequestDays decimal.Decimal `json:"request_days" binding:"required"`
	Reason      string          `json:"reason"`
}

type TimeOffDecisionDTO struct {
	Status string `json:"status" binding:"required"` // Approved or Rejected
}

type TimeOffResponse struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	ManagerID    string          `json:"manager_id"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	RequestDays  decimal.Decimal `json:"request_days"`
	Reason       string          `json:"reason"`
	Status       string          `json:"status"`
	ApprovalDate *string         `json:"approval_date"`
}

const dateLayout = "2006-01-02"

// TimeOffService is the balance-checked leave ledger. Approval re-verifies
// the balance and debits it inside the same transaction as the status write,
// so a crash can leave the request pending but never debited-and-unrecorded.
type TimeOffService interface {
	Request(ctx context.Context, actor Actor, req TimeOffRequestDTO) (TimeOffResponse, error)
	Decide(ctx context.Context, actor Actor, requestID uuid.UUID, decision string) (TimeOffResponse, error)
	ListPending(ctx context.Context, actor Actor) ([]TimeOffResponse, error)
}

type timeOffService struct {
	timeOffRepo repository.TimeOffRepository
	userRepo    repository.UserRepository
	txManager   repository.TransactionManager
	now         func() time.Time
}

func NewTimeOffService(
	timeOffRepo repository.TimeOffRepository,
	userRepo repository.UserRepository,
	txManager repository.TransactionManager,
) TimeOffService {
	return &timeOffService{
		timeOffRepo: timeOffRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		now:         time.Now,
	}
}

func toTimeOffResponse(request *model.TimeOffRequest) TimeOffResponse {
	res := TimeOffResponse{
		ID:          request.ID.String(),
		UserID:      request.UserID.String(),
		ManagerID:   request.ManagerID.String(),
		StartDate:   request.StartDate.Format(dateLayout),
		EndDate:     request.EndDate.Format(dateLayout),
		RequestDays: request.RequestDays,
		Reason:      request.Reason,
		Status:      request.Status,
	}
	if request.User != nil {
		res.EmployeeName = request.User.FullName()
	}
	if request.ApprovalDate != nil {
		d := request.ApprovalDate.Format(time.RFC3339)
		res.ApprovalDate = &d
	}
	return res
}

func (s *timeOffService) Request(ctx context.Context, actor Actor, req TimeOffRequestDTO) (TimeOffResponse, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return TimeOffResponse{}, apperr.Validation("invalid start_date, expected YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return TimeOffResponse{}, apperr.Validation("invalid end_date, expected YYYY-MM-DD")
	}
	if start.After(end) {
		return TimeOffResponse{}, apperr.Validation("start_date must not be after end_date")
	}
	if !req.RequestDays.IsPositive() {
		return TimeOffResponse{}, apperr.Validation("request_days must be positive")
	}

	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return TimeOffResponse{}, fmt.Errorf("failed to load requesting user: %w", err)
	}
	if user.ReportingManagerID == nil {
		return TimeOffResponse{}, apperr.Configuration("no reporting manager configured for this user")
	}
	// Checked against the balance at submission time; approval re-checks.
	if req.RequestDays.GreaterThan(user.PTOBalanceDays) {
		return TimeOffResponse{}, apperr.Newf(apperr.KindValidation,
			"requested %s days exceeds balance of %s", req.RequestDays.String(), user.PTOBalanceDays.String())
	}

	request := model.TimeOffRequest{
		UserID:      user.ID,
		ManagerID:   *user.ReportingManagerID,
		StartDate:   start,
		EndDate:     end,
		RequestDays: req.RequestDays,
		Reason:      req.Reason,
		Status:      model.TimeOffStatusRequest,
	}
	if err := s.timeOffRepo.Create(ctx, &request); err != nil {
		return TimeOffResponse{}, fmt.Errorf("failed to create time-off request: %w", err)
	}

	return toTimeOffResponse(&request), nil
}

func (s *timeOffService) Decide(ctx context.Context, actor Actor, requestID uuid.UUID, decision string) (TimeOffResponse, error) {
	if !actor.Can(model.OverrideRoles) {
		return TimeOffResponse{}, apperr.Authorization("insufficient role to decide time-off requests")
	}
	if decision != model.TimeOffStatusApproved && decision != model.TimeOffStatusRejected {
		return TimeOffResponse{}, apperr.Newf(apperr.KindValidation, "decision must be %s or %s",
			model.TimeOffStatusApproved, model.TimeOffStatusRejected)
	}

	var request *model.TimeOffRequest
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		// Scoped query: only this manager's still-pending request resolves.
		pending, findErr := s.timeOffRepo.FindPendingForManagerForUpdate(txCtx, requestID, actor.ID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return apperr.NotFound("no pending time-off request found for this manager")
			}
			return fmt.Errorf("failed to load time-off request: %w", findErr)
		}

		if decision == model.TimeOffStatusApproved {
			employee, userErr := s.userRepo.GetByIDForUpdate(txCtx, pending.UserID)
			if userErr != nil {
				return fmt.Errorf("failed to load employee: %w", userErr)
			}
			// The balance may have shrunk since submission.
			if employee.PTOBalanceDays.LessThan(pending.RequestDays) {
				return apperr.Newf(apperr.KindConflict,
					"employee balance %s is below requested %s days",
					employee.PTOBalanceDays.String(), pending.RequestDays.String())
			}
			if debitErr := s.userRepo.DebitPTOBalance(txCtx, employee.ID, pending.RequestDays); debitErr != nil {
				return fmt.Errorf("failed to debit pto balance: %w", debitErr)
			}
		}

		now := s.now()
		pending.Status = decision
		pending.ApprovalDate = &now
		if updateErr := s.timeOffRepo.Update(txCtx, pending); updateErr != nil {
			return fmt.Errorf("failed to update time-off request: %w", updateErr)
		}

		request = pending
		return nil
	})
	if err != nil {
		return TimeOffResponse{}, err
	}

	return toTimeOffResponse(request), nil
}

func (s *timeOffService) ListPending(ctx context.Context, actor Actor) ([]TimeOffResponse, error) {
	if !actor.Can(model.OverrideRoles) {
		return nil, apperr.Authorization("insufficient role to view pending time-off requests")
	}

	requests, err := s.timeOffRepo.ListPendingByManager(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending time-off requests: %w", err)
	}

	result := make([]TimeOffResponse, 0, len(requests))
	for i := range requests {
		result = append(result, toTimeOffResponse(&requests[i]))
	}
	return result, nil
}
