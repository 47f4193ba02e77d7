package service

import (
	"context"
	"testing"

	"oms-backend/internal/model"
	"oms-backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validRegisterRequest() RegisterUserRequest {
	return RegisterUserRequest{
		Email:     "new.hire@acme.io",
		Password:  "s3cret-pw",
		FirstName: "Linh",
		LastName:  "Tran",
		RoleKey:   model.RoleStore,
	}
}

func hlmActor() Actor {
	return Actor{ID: uuid.New(), Role: model.RoleHLM}
}

func TestRegisterRequiresManagerRole(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)

	for _, role := range []string{model.RoleFrontDesk, model.RoleSalesRep, model.RoleEM, model.RoleDelivery} {
		_, err := svc.Register(context.Background(), Actor{ID: uuid.New(), Role: role}, validRegisterRequest())
		require.Error(t, err, "role %s must not register users", role)
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	}
	assert.Empty(t, repo.users)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newMockUserRepo())

	req := validRegisterRequest()
	req.RoleKey = "Janitor"
	_, err := svc.Register(context.Background(), hlmActor(), req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	repo.add(&model.User{Email: "new.hire@acme.io", RoleKey: model.RoleStore})
	svc := NewUserService(repo)

	_, err := svc.Register(context.Background(), hlmActor(), validRegisterRequest())
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegisterResolvesReportingManager(t *testing.T) {
	repo := newMockUserRepo()
	manager := repo.add(&model.User{Email: "em@acme.io", RoleKey: model.RoleEM})
	svc := NewUserService(repo)

	req := validRegisterRequest()
	req.ReportingManager = manager.ID.String()
	res, err := svc.Register(context.Background(), hlmActor(), req)
	require.NoError(t, err)

	require.NotNil(t, res.ReportingManager)
	assert.Equal(t, manager.ID.String(), *res.ReportingManager)
}

func TestRegisterRejectsUnknownReportingManager(t *testing.T) {
	svc := NewUserService(newMockUserRepo())

	req := validRegisterRequest()
	req.ReportingManager = uuid.New().String()
	_, err := svc.Register(context.Background(), hlmActor(), req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRegisterHashesPasswordAndSeedsBalance(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)

	res, err := svc.Register(context.Background(), hlmActor(), validRegisterRequest())
	require.NoError(t, err)
	assert.True(t, res.PTOBalanceDays.Equal(decimal.NewFromFloat(10.0)))

	stored, err := repo.GetByEmail(context.Background(), "new.hire@acme.io")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pw", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret-pw")))
}

func TestLoginVerifiesCredentials(t *testing.T) {
	repo := newMockUserRepo()
	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret-pw"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.add(&model.User{Email: "em@acme.io", Password: string(hashed), RoleKey: model.RoleEM})
	svc := NewUserService(repo)

	res, err := svc.Login(context.Background(), LoginUserRequest{Email: "em@acme.io", Password: "s3cret-pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Login(context.Background(), LoginUserRequest{Email: "em@acme.io", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))

	_, err = svc.Login(context.Background(), LoginUserRequest{Email: "nobody@acme.io", Password: "s3cret-pw"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
}

func TestListDeliveryPersonnelFiltersByRole(t *testing.T) {
	repo := newMockUserRepo()
	repo.add(&model.User{Email: "courier@acme.io", RoleKey: model.RoleDelivery})
	repo.add(&model.User{Email: "clerk@acme.io", RoleKey: model.RoleFrontDesk})
	svc := NewUserService(repo)

	couriers, err := svc.ListDeliveryPersonnel(context.Background())
	require.NoError(t, err)
	require.Len(t, couriers, 1)
	assert.Equal(t, "courier@acme.io", couriers[0].Email)
}

func TestGetByIDNotFoundUser(t *testing.T) {
	svc := NewUserService(newMockUserRepo())

	_, err := svc.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
