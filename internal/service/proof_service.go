package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oms-backend/internal/model"
	"oms-backend/internal/repository"
	ws "oms-backend/internal/websocket"
	"oms-backend/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DTOs

type SubmitProofRequest struct {
	OrderID        string  `json:"order_id" binding:"required"`
	ProofType      string  `json:"proof_type" binding:"required"`
	PhotoReference string  `json:"photo_reference" binding:"required"`
	GPSLat         float64 `json:"gps_lat"`
	GPSLong        float64 `json:"gps_long"`
}

type ProofResponse struct {
	ID                 string `json:"id"`
	OrderID            string `json:"order_id"`
	ProofType          string `json:"proof_type"`
	PhotoReference     string `json:"photo_reference"`
	IsLocationVerified bool   `json:"is_location_verified"`
	NewOrderStatus     string `json:"new_order_status"`
	ExecutedAt         string `json:"executed_at"`
}

type SubmitPingRequest struct {
	OrderID string  `json:"order_id" binding:"required"`
	Lat     float64 `json:"lat" binding:"required"`
	Long    float64 `json:"long" binding:"required"`
}

type PingResponse struct {
	ID         string  `json:"id"`
	OrderID    string  `json:"order_id"`
	UserID     string  `json:"user_id"`
	Lat        float64 `json:"lat"`
	Long       float64 `json:"long"`
	RecordedAt string  `json:"recorded_at"`
}

// ProofService is the compliance gate: it validates photographic evidence and
// location pings, and drives the automatic forward transitions of the order
// workflow as a side effect of accepting a proof.
type ProofService interface {
	SubmitProof(ctx context.Context, actor Actor, req SubmitProofRequest) (ProofResponse, error)
	SubmitPing(ctx context.Context, actor Actor, req SubmitPingRequest) (PingResponse, error)
	ListProofsByOrder(ctx context.Context, orderID uuid.UUID) ([]model.ProofOfExecutionRecord, error)
	ListPings(ctx context.Context, page, limit int) ([]model.GPSTrackingPing, int64, error)
}

type proofService struct {
	proofRepo      repository.ProofRepository
	orderRepo      repository.OrderRepository
	attendanceRepo repository.AttendanceRepository
	txManager      repository.TransactionManager
	hub            *ws.Hub
}

func NewProofService(
	proofRepo repository.ProofRepository,
	orderRepo repository.OrderRepository,
	attendanceRepo repository.AttendanceRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) ProofService {
	return &proofService{
		proofRepo:      proofRepo,
		orderRepo:      orderRepo,
		attendanceRepo: attendanceRepo,
		txManager:      txManager,
		hub:            hub,
	}
}

// proofGate captures the per-type rules: who may submit, what the order
// status must be, and where the order moves on acceptance.
type proofGate struct {
	allowedRoles   []string
	requiredStatus string
	nextStatus     string
}

var proofGates = map[string]proofGate{
	model.ProofTypeQC: {
		allowedRoles:   model.QCProofRoles,
		requiredStatus: model.OrderStatusPreparing,
		nextStatus:     model.OrderStatusReadyForDispatch,
	},
	model.ProofTypePOD: {
		allowedRoles:   model.PODProofRoles,
		requiredStatus: model.OrderStatusDispatched,
		nextStatus:     model.OrderStatusDelivered,
	},
}

func (s *proofService) SubmitProof(ctx context.Context, actor Actor, req SubmitProofRequest) (ProofResponse, error) {
	gate, ok := proofGates[req.ProofType]
	if !ok {
		return ProofResponse{}, apperr.Newf(apperr.KindValidation, "invalid proof_type: %s", req.ProofType)
	}
	if !actor.Can(gate.allowedRoles) {
		return ProofResponse{}, apperr.Newf(apperr.KindAuthorization, "role %s may not submit %s", actor.Role, req.ProofType)
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return ProofResponse{}, apperr.Validation("invalid order_id")
	}

	proof := model.ProofOfExecutionRecord{
		OrderID:      orderID,
		ExecutedByID: actor.ID,
		ProofType:    req.ProofType,
		// POD location claims are reconciled against the ping stream later;
		// everything else is trusted at capture time.
		IsLocationVerified: req.ProofType != model.ProofTypePOD,
		PhotoReference:     req.PhotoReference,
		GPSLat:             req.GPSLat,
		GPSLong:            req.GPSLong,
	}

	// Evidence row and status advance commit together or not at all.
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, findErr := s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return apperr.NotFound("order not found")
			}
			return fmt.Errorf("failed to load order: %w", findErr)
		}

		if order.CurrentStatus != gate.requiredStatus {
			return apperr.Newf(apperr.KindConflict,
				"%s requires order status %q, order is %q", req.ProofType, gate.requiredStatus, order.CurrentStatus)
		}

		if createErr := s.proofRepo.CreateProof(txCtx, &proof); createErr != nil {
			return fmt.Errorf("failed to record proof: %w", createErr)
		}
		if advErr := s.orderRepo.UpdateStatus(txCtx, order.ID, gate.nextStatus); advErr != nil {
			return fmt.Errorf("failed to advance order status: %w", advErr)
		}
		return nil
	})
	if err != nil {
		return ProofResponse{}, err
	}

	if s.hub != nil {
		s.hub.Publish("order.status_changed", map[string]interface{}{
			"order_id": orderID.String(),
			"status":   gate.nextStatus,
			"proof":    req.ProofType,
		})
	}

	return ProofResponse{
		ID:                 proof.ID.String(),
		OrderID:            orderID.String(),
		ProofType:          proof.ProofType,
		PhotoReference:     proof.PhotoReference,
		IsLocationVerified: proof.IsLocationVerified,
		NewOrderStatus:     gate.nextStatus,
		ExecutedAt:         proof.ExecutedAt.Format(time.RFC3339),
	}, nil
}

func (s *proofService) SubmitPing(ctx context.Context, actor Actor, req SubmitPingRequest) (PingResponse, error) {
	if _, err := s.attendanceRepo.FindOpenByUser(ctx, actor.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PingResponse{}, apperr.Authorization("not clocked in")
		}
		return PingResponse{}, fmt.Errorf("failed to check attendance: %w", err)
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return PingResponse{}, apperr.Validation("invalid order_id")
	}

	order, err := s.orderRepo.FindByIDWithItems(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PingResponse{}, apperr.NotFound("order not found")
		}
		return PingResponse{}, fmt.Errorf("failed to load order: %w", err)
	}

	if order.CurrentStatus != model.OrderStatusDispatched {
		return PingResponse{}, apperr.Newf(apperr.KindAuthorization, "order is %s, tracking only applies to dispatched orders", order.CurrentStatus)
	}
	if order.AssignedDeliveryID == nil || *order.AssignedDeliveryID != actor.ID {
		return PingResponse{}, apperr.Authorization("order is not assigned to you")
	}

	ping := model.GPSTrackingPing{
		UserID:  actor.ID,
		OrderID: orderID,
		Lat:     req.Lat,
		Long:    req.Long,
	}
	if err := s.proofRepo.CreatePing(ctx, &ping); err != nil {
		return PingResponse{}, fmt.Errorf("failed to record gps ping: %w", err)
	}

	return PingResponse{
		ID:         ping.ID.String(),
		OrderID:    ping.OrderID.String(),
		UserID:     ping.UserID.String(),
		Lat:        ping.Lat,
		Long:       ping.Long,
		RecordedAt: ping.RecordedAt.Format(time.RFC3339),
	}, nil
}

func (s *proofService) ListProofsByOrder(ctx context.Context, orderID uuid.UUID) ([]model.ProofOfExecutionRecord, error) {
	proofs, err := s.proofRepo.ListProofsByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proofs: %w", err)
	}
	return proofs, nil
}

func (s *proofService) ListPings(ctx context.Context, page, limit int) ([]model.GPSTrackingPing, int64, error) {
	pings, total, err := s.proofRepo.ListPings(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list gps history: %w", err)
	}
	return pings, total, nil
}
