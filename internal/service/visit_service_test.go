package service

import (
	"context"
	"testing"

	"oms-backend/internal/model"
	"oms-backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVisitFixture() (VisitService, *mockVisitRepo) {
	repo := newMockVisitRepo()
	return NewVisitService(repo), repo
}

func salesRepActor() Actor {
	return Actor{ID: uuid.New(), Role: model.RoleSalesRep}
}

func TestCreateVisitRequiresSalesRep(t *testing.T) {
	svc, repo := newVisitFixture()

	for _, role := range []string{model.RoleFrontDesk, model.RoleStore, model.RoleDelivery} {
		_, err := svc.Create(context.Background(), Actor{ID: uuid.New(), Role: role}, CreateVisitRequest{
			ClientName: "Acme Clinic",
			VisitDate:  "2025-07-01",
		})
		require.Error(t, err, "role %s must not plan visits", role)
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	}
	assert.Empty(t, repo.plans)
}

func TestCreateVisitRejectsBadDate(t *testing.T) {
	svc, _ := newVisitFixture()

	_, err := svc.Create(context.Background(), salesRepActor(), CreateVisitRequest{
		ClientName: "Acme Clinic",
		VisitDate:  "July 1st",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateVisitStartsPlanned(t *testing.T) {
	svc, _ := newVisitFixture()
	actor := salesRepActor()

	res, err := svc.Create(context.Background(), actor, CreateVisitRequest{
		ClientName: "Acme Clinic",
		VisitDate:  "2025-07-01",
		VisitNotes: "quarterly catalog review",
	})
	require.NoError(t, err)

	assert.Equal(t, model.VisitStatusPlanned, res.Status)
	assert.Equal(t, actor.ID.String(), res.SalesRepID)
	assert.Equal(t, "2025-07-01", res.VisitDate)
}

func TestUpdateVisitMissedRequiresRemark(t *testing.T) {
	svc, _ := newVisitFixture()
	actor := salesRepActor()

	created, err := svc.Create(context.Background(), actor, CreateVisitRequest{
		ClientName: "Acme Clinic",
		VisitDate:  "2025-07-01",
	})
	require.NoError(t, err)
	visitID := uuid.MustParse(created.ID)

	_, err = svc.Update(context.Background(), actor, visitID, UpdateVisitRequest{
		Status: model.VisitStatusMissed,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	res, err := svc.Update(context.Background(), actor, visitID, UpdateVisitRequest{
		Status:       model.VisitStatusMissed,
		MissedRemark: "client closed for holiday",
	})
	require.NoError(t, err)
	assert.Equal(t, model.VisitStatusMissed, res.Status)
	assert.Equal(t, "client closed for holiday", res.MissedRemark)
}

func TestUpdateVisitRejectsUnknownStatus(t *testing.T) {
	svc, _ := newVisitFixture()
	actor := salesRepActor()

	created, err := svc.Create(context.Background(), actor, CreateVisitRequest{
		ClientName: "Acme Clinic",
		VisitDate:  "2025-07-01",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), actor, uuid.MustParse(created.ID), UpdateVisitRequest{Status: "Rescheduled"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdateVisitOwnershipScope(t *testing.T) {
	svc, _ := newVisitFixture()
	owner := salesRepActor()

	created, err := svc.Create(context.Background(), owner, CreateVisitRequest{
		ClientName: "Acme Clinic",
		VisitDate:  "2025-07-01",
	})
	require.NoError(t, err)
	visitID := uuid.MustParse(created.ID)

	otherRep := salesRepActor()
	_, err = svc.Update(context.Background(), otherRep, visitID, UpdateVisitRequest{Status: model.VisitStatusVisited})
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))

	manager := Actor{ID: uuid.New(), Role: model.RoleMLM}
	res, err := svc.Update(context.Background(), manager, visitID, UpdateVisitRequest{Status: model.VisitStatusVisited})
	require.NoError(t, err)
	assert.Equal(t, model.VisitStatusVisited, res.Status)
}

func TestUpdateVisitNotFound(t *testing.T) {
	svc, _ := newVisitFixture()

	_, err := svc.Update(context.Background(), salesRepActor(), uuid.New(), UpdateVisitRequest{Status: model.VisitStatusVisited})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListVisitsScope(t *testing.T) {
	svc, _ := newVisitFixture()
	repA := salesRepActor()
	repB := salesRepActor()

	for _, actor := range []Actor{repA, repA, repB} {
		_, err := svc.Create(context.Background(), actor, CreateVisitRequest{
			ClientName: "Acme Clinic",
			VisitDate:  "2025-07-01",
		})
		require.NoError(t, err)
	}

	own, err := svc.List(context.Background(), repA)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	all, err := svc.List(context.Background(), Actor{ID: uuid.New(), Role: model.RoleHLM})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
