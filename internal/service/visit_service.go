package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"oms-backend/internal/model"
	"oms-backend/internal/repository"
	"oms-backend/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DTOs

type CreateVisitRequest struct {
	ClientName string `json:"client_name" binding:"required"`
	VisitDate  string `json:"visit_date" binding:"required"` // YYYY-MM-DD
	VisitNotes string `json:"visit_notes"`
}

type UpdateVisitRequest struct {
	Status       string `json:"status" binding:"required"`
	VisitNotes   string `json:"visit_notes"`
	MissedRemark string `json:"missed_remark"`
}

type VisitResponse struct {
	ID           string `json:"id"`
	SalesRepID   string `json:"sales_rep_id"`
	ClientName   string `json:"client_name"`
	VisitDate    string `json:"visit_date"`
	Status       string `json:"status"`
	VisitNotes   string `json:"visit_notes"`
	MissedRemark string `json:"missed_remark"`
}

// VisitService is the ownership-scoped sales visit planner. One validation
// rule matters: a Missed visit must carry a remark.
type VisitService interface {
	Create(ctx context.Context, actor Actor, req CreateVisitRequest) (VisitResponse, error)
	Update(ctx context.Context, actor Actor, visitID uuid.UUID, req UpdateVisitRequest) (VisitResponse, error)
	List(ctx context.Context, actor Actor) ([]VisitResponse, error)
}

type visitService struct {
	visitRepo repository.VisitRepository
}

func NewVisitService(visitRepo repository.VisitRepository) VisitService {
	return &visitService{visitRepo: visitRepo}
}

func toVisitResponse(plan *model.SalesVisitPlan) VisitResponse {
	return VisitResponse{
		ID:           plan.ID.String(),
		SalesRepID:   plan.SalesRepID.String(),
		ClientName:   plan.ClientName,
		VisitDate:    plan.VisitDate.Format(dateLayout),
		Status:       plan.Status,
		VisitNotes:   plan.VisitNotes,
		MissedRemark: plan.MissedRemark,
	}
}

func (s *visitService) Create(ctx context.Context, actor Actor, req CreateVisitRequest) (VisitResponse, error) {
	if !actor.Can([]string{model.RoleSalesRep}) {
		return VisitResponse{}, apperr.Authorization("only sales reps may plan visits")
	}

	visitDate, err := time.Parse(dateLayout, req.VisitDate)
	if err != nil {
		return VisitResponse{}, apperr.Validation("invalid visit_date, expected YYYY-MM-DD")
	}

	plan := model.SalesVisitPlan{
		SalesRepID: actor.ID,
		ClientName: req.ClientName,
		VisitDate:  visitDate,
		Status:     model.VisitStatusPlanned,
		VisitNotes: req.VisitNotes,
	}
	if err := s.visitRepo.Create(ctx, &plan); err != nil {
		return VisitResponse{}, fmt.Errorf("failed to create visit plan: %w", err)
	}

	return toVisitResponse(&plan), nil
}

func (s *visitService) Update(ctx context.Context, actor Actor, visitID uuid.UUID, req UpdateVisitRequest) (VisitResponse, error) {
	if !model.ValidVisitStatus(req.Status) {
		return VisitResponse{}, apperr.Newf(apperr.KindValidation, "invalid visit status: %s", req.Status)
	}
	if req.Status == model.VisitStatusMissed && strings.TrimSpace(req.MissedRemark) == "" {
		return VisitResponse{}, apperr.Validation("missed_remark is required when status is Missed")
	}

	plan, err := s.visitRepo.FindByID(ctx, visitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VisitResponse{}, apperr.NotFound("visit plan not found")
		}
		return VisitResponse{}, fmt.Errorf("failed to load visit plan: %w", err)
	}

	// Owner or a manager; other roles never see foreign plans.
	if plan.SalesRepID != actor.ID && !actor.Can(model.ManagerRoles) {
		return VisitResponse{}, apperr.Authorization("visit plan belongs to another sales rep")
	}

	plan.Status = req.Status
	if req.VisitNotes != "" {
		plan.VisitNotes = req.VisitNotes
	}
	if req.Status == model.VisitStatusMissed {
		plan.MissedRemark = strings.TrimSpace(req.MissedRemark)
	}

	if err := s.visitRepo.Update(ctx, plan); err != nil {
		return VisitResponse{}, fmt.Errorf("failed to update visit plan: %w", err)
	}

	return toVisitResponse(plan), nil
}

func (s *visitService) List(ctx context.Context, actor Actor) ([]VisitResponse, error) {
	var (
		plans []model.SalesVisitPlan
		err   error
	)
	if actor.Can(model.ManagerRoles) {
		plans, err = s.visitRepo.ListAll(ctx)
	} else {
		plans, err = s.visitRepo.ListByOwner(ctx, actor.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list visit plans: %w", err)
	}

	result := make([]VisitResponse, 0, len(plans))
	for i := range plans {
		result = append(result, toVisitResponse(&plans[i]))
	}
	return result, nil
}
