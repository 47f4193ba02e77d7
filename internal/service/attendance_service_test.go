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

func newTestAttendanceService(repo *mockAttendanceRepo, at time.Time) *attendanceService {
	return &attendanceService{
		attendanceRepo: repo,
		txManager:      &mockTxManager{},
		now:            func() time.Time { return at },
	}
}

func TestClockInCreatesOpenRecord(t *testing.T) {
	repo := newMockAttendanceRepo()
	clockIn := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := newTestAttendanceService(repo, clockIn)
	userID := uuid.New()

	res, err := svc.ClockIn(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), res.UserID)
	assert.Equal(t, model.AttendanceAvailable, res.Status)
	assert.Nil(t, res.ClockOutTime)
	assert.Nil(t, res.DurationMinutes)
}

func TestClockInRejectsSecondOpenRecord(t *testing.T) {
	repo := newMockAttendanceRepo()
	svc := newTestAttendanceService(repo, time.Now())
	userID := uuid.New()

	_, err := svc.ClockIn(context.Background(), userID)
	require.NoError(t, err)

	_, err = svc.ClockIn(context.Background(), userID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Len(t, repo.records, 1)
}

func TestClockInIndependentPerUser(t *testing.T) {
	repo := newMockAttendanceRepo()
	svc := newTestAttendanceService(repo, time.Now())

	_, err := svc.ClockIn(context.Background(), uuid.New())
	require.NoError(t, err)
	_, err = svc.ClockIn(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Len(t, repo.records, 2)
}

func TestClockOutFixesDuration(t *testing.T) {
	repo := newMockAttendanceRepo()
	clockIn := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := newTestAttendanceService(repo, clockIn)
	userID := uuid.New()

	_, err := svc.ClockIn(context.Background(), userID)
	require.NoError(t, err)

	svc.now = func() time.Time { return clockIn.Add(95 * time.Minute) }
	res, err := svc.ClockOut(context.Background(), userID)
	require.NoError(t, err)

	require.NotNil(t, res.DurationMinutes)
	assert.Equal(t, 95, *res.DurationMinutes)
	require.NotNil(t, res.ClockOutTime)
}

func TestClockOutWithoutOpenRecord(t *testing.T) {
	repo := newMockAttendanceRepo()
	svc := newTestAttendanceService(repo, time.Now())

	_, err := svc.ClockOut(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestClockOutTwiceFails(t *testing.T) {
	repo := newMockAttendanceRepo()
	svc := newTestAttendanceService(repo, time.Now())
	userID := uuid.New()

	_, err := svc.ClockIn(context.Background(), userID)
	require.NoError(t, err)
	_, err = svc.ClockOut(context.Background(), userID)
	require.NoError(t, err)

	_, err = svc.ClockOut(context.Background(), userID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestClockInAgainAfterClockOut(t *testing.T) {
	repo := newMockAttendanceRepo()
	svc := newTestAttendanceService(repo, time.Now())
	userID := uuid.New()

	_, err := svc.ClockIn(context.Background(), userID)
	require.NoError(t, err)
	_, err = svc.ClockOut(context.Background(), userID)
	require.NoError(t, err)

	// A closed record must not block a fresh shift.
	_, err = svc.ClockIn(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, repo.records, 2)
}

func TestStatusReportsOpenShift(t *testing.T) {
	repo := newMockAttendanceRepo()
	svc := newTestAttendanceService(repo, time.Now())
	userID := uuid.New()

	res, err := svc.Status(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, res.ClockedIn)
	assert.Nil(t, res.Record)

	_, err = svc.ClockIn(context.Background(), userID)
	require.NoError(t, err)

	res, err = svc.Status(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, res.ClockedIn)
	require.NotNil(t, res.Record)
	assert.Equal(t, userID.String(), res.Record.UserID)
}
