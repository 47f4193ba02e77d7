package service

import (
	"context"
	"testing"
	"time"

	"oms-backend/internal/model"
	"oms-backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type proofFixture struct {
	svc            ProofService
	proofRepo      *mockProofRepo
	orderRepo      *mockOrderRepo
	attendanceRepo *mockAttendanceRepo
}

func newProofFixture() *proofFixture {
	proofRepo := newMockProofRepo()
	orderRepo := newMockOrderRepo()
	attendanceRepo := newMockAttendanceRepo()
	return &proofFixture{
		svc:            NewProofService(proofRepo, orderRepo, attendanceRepo, &mockTxManager{}, nil),
		proofRepo:      proofRepo,
		orderRepo:      orderRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (f *proofFixture) clockIn(userID uuid.UUID) {
	f.attendanceRepo.records = append(f.attendanceRepo.records, &model.AttendanceRecord{
		ID:          uuid.New(),
		UserID:      userID,
		ClockInTime: time.Now().Add(-time.Hour),
		Status:      model.AttendanceAvailable,
	})
}

func TestSubmitProofRejectsUnknownType(t *testing.T) {
	f := newProofFixture()
	actor := Actor{ID: uuid.New(), Role: model.RoleStore}

	_, err := f.svc.SubmitProof(context.Background(), actor, SubmitProofRequest{
		OrderID:        uuid.New().String(),
		ProofType:      "Selfie",
		PhotoReference: "img/1.jpg",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSubmitProofRoleGates(t *testing.T) {
	f := newProofFixture()
	order := f.orderRepo.add(&model.Order{CurrentStatus: model.OrderStatusPreparing})

	tests := []struct {
		name      string
		role      string
		proofType string
	}{
		{"delivery cannot submit qc", model.RoleDelivery, model.ProofTypeQC},
		{"store cannot submit pod", model.RoleStore, model.ProofTypePOD},
		{"lab cannot submit pod", model.RoleLab, model.ProofTypePOD},
		{"front desk cannot submit qc", model.RoleFrontDesk, model.ProofTypeQC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := Actor{ID: uuid.New(), Role: tt.role}
			_, err := f.svc.SubmitProof(context.Background(), actor, SubmitProofRequest{
				OrderID:        order.ID.String(),
				ProofType:      tt.proofType,
				PhotoReference: "img/1.jpg",
			})
			require.Error(t, err)
			assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
		})
	}

	assert.Empty(t, f.proofRepo.proofs)
}

func TestQCProofAdvancesOrder(t *testing.T) {
	f := newProofFixture()
	order := f.orderRepo.add(&model.Order{CurrentStatus: model.OrderStatusPreparing})
	actor := Actor{ID: uuid.New(), Role: model.RoleLab}

	res, err := f.svc.SubmitProof(context.Background(), actor, SubmitProofRequest{
		OrderID:        order.ID.String(),
		ProofType:      model.ProofTypeQC,
		PhotoReference: "img/qc-42.jpg",
		GPSLat:         10.78,
		GPSLong:        106.70,
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusReadyForDispatch, res.NewOrderStatus)
	assert.True(t, res.IsLocationVerified)
	assert.Equal(t, model.OrderStatusReadyForDispatch, f.orderRepo.orders[order.ID].CurrentStatus)
	require.Len(t, f.proofRepo.proofs, 1)
	assert.Equal(t, actor.ID, f.proofRepo.proofs[0].ExecutedByID)
}

func TestPODProofDeliversAndDefersLocationVerification(t *testing.T) {
	f := newProofFixture()
	courier := uuid.New()
	order := f.orderRepo.add(&model.Order{
		CurrentStatus:      model.OrderStatusDispatched,
		AssignedDeliveryID: &courier,
	})
	actor := Actor{ID: courier, Role: model.RoleDelivery}

	res, err := f.svc.SubmitProof(context.Background(), actor, SubmitProofRequest{
		OrderID:        order.ID.String(),
		ProofType:      model.ProofTypePOD,
		PhotoReference: "img/pod-42.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusDelivered, res.NewOrderStatus)
	assert.False(t, res.IsLocationVerified, "POD location claims are reconciled later")
	assert.Equal(t, model.OrderStatusDelivered, f.orderRepo.orders[order.ID].CurrentStatus)
}

func TestSubmitProofStatusGuard(t *testing.T) {
	f := newProofFixture()

	tests := []struct {
		name        string
		orderStatus string
		role        string
		proofType   string
	}{
		{"qc on pending order", model.OrderStatusPending, model.RoleStore, model.ProofTypeQC},
		{"qc on dispatched order", model.OrderStatusDispatched, model.RoleStore, model.ProofTypeQC},
		{"pod on preparing order", model.OrderStatusPreparing, model.RoleDelivery, model.ProofTypePOD},
		{"pod on delivered order", model.OrderStatusDelivered, model.RoleDelivery, model.ProofTypePOD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := f.orderRepo.add(&model.Order{CurrentStatus: tt.orderStatus})
			actor := Actor{ID: uuid.New(), Role: tt.role}

			_, err := f.svc.SubmitProof(context.Background(), actor, SubmitProofRequest{
				OrderID:        order.ID.String(),
				ProofType:      tt.proofType,
				PhotoReference: "img/x.jpg",
			})
			require.Error(t, err)
			assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
			assert.Equal(t, tt.orderStatus, f.orderRepo.orders[order.ID].CurrentStatus)
		})
	}

	assert.Empty(t, f.proofRepo.proofs, "rejected proofs must leave no evidence rows")
}

func TestSubmitProofOrderNotFound(t *testing.T) {
	f := newProofFixture()
	actor := Actor{ID: uuid.New(), Role: model.RoleStore}

	_, err := f.svc.SubmitProof(context.Background(), actor, SubmitProofRequest{
		OrderID:        uuid.New().String(),
		ProofType:      model.ProofTypeQC,
		PhotoReference: "img/x.jpg",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSubmitPingRequiresOpenShift(t *testing.T) {
	f := newProofFixture()
	courier := uuid.New()
	order := f.orderRepo.add(&model.Order{
		CurrentStatus:      model.OrderStatusDispatched,
		AssignedDeliveryID: &courier,
	})
	actor := Actor{ID: courier, Role: model.RoleDelivery}

	_, err := f.svc.SubmitPing(context.Background(), actor, SubmitPingRequest{
		OrderID: order.ID.String(),
		Lat:     10.78,
		Long:    106.70,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	assert.Empty(t, f.proofRepo.pings)
}

func TestSubmitPingRequiresDispatchedOrder(t *testing.T) {
	f := newProofFixture()
	courier := uuid.New()
	order := f.orderRepo.add(&model.Order{
		CurrentStatus:      model.OrderStatusDelivered,
		AssignedDeliveryID: &courier,
	})
	actor := Actor{ID: courier, Role: model.RoleDelivery}
	f.clockIn(courier)

	_, err := f.svc.SubmitPing(context.Background(), actor, SubmitPingRequest{
		OrderID: order.ID.String(),
		Lat:     10.78,
		Long:    106.70,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
}

func TestSubmitPingRequiresAssignment(t *testing.T) {
	f := newProofFixture()
	assigned := uuid.New()
	order := f.orderRepo.add(&model.Order{
		CurrentStatus:      model.OrderStatusDispatched,
		AssignedDeliveryID: &assigned,
	})
	other := Actor{ID: uuid.New(), Role: model.RoleDelivery}
	f.clockIn(other.ID)

	_, err := f.svc.SubmitPing(context.Background(), other, SubmitPingRequest{
		OrderID: order.ID.String(),
		Lat:     10.78,
		Long:    106.70,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
}

func TestSubmitPingRecordsLocation(t *testing.T) {
	f := newProofFixture()
	courier := uuid.New()
	order := f.orderRepo.add(&model.Order{
		CurrentStatus:      model.OrderStatusDispatched,
		AssignedDeliveryID: &courier,
	})
	actor := Actor{ID: courier, Role: model.RoleDelivery}
	f.clockIn(courier)

	res, err := f.svc.SubmitPing(context.Background(), actor, SubmitPingRequest{
		OrderID: order.ID.String(),
		Lat:     10.78,
		Long:    106.70,
	})
	require.NoError(t, err)

	assert.Equal(t, courier.String(), res.UserID)
	assert.Equal(t, 10.78, res.Lat)
	require.Len(t, f.proofRepo.pings, 1)
	assert.Equal(t, order.ID, f.proofRepo.pings[0].OrderID)
}
