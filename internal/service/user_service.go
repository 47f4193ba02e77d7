package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"oms-backend/internal/model"
	"oms-backend/internal/repository"
	"oms-backend/pkg/apperr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DTOs for Request validation
type RegisterUserRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=6"`
	FirstName        string `json:"first_name" binding:"required"`
	LastName         string `json:"last_name" binding:"required"`
	RoleKey          string `json:"role_key" binding:"required"`
	ReportingManager string `json:"reporting_manager"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse returns User data without exposing sensitive fields
type UserResponse struct {
	ID               string          `json:"id"`
	Email            string          `json:"email"`
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	RoleKey          string          `json:"role_key"`
	ReportingManager *string         `json:"reporting_manager"`
	PTOBalanceDays   decimal.Decimal `json:"pto_balance_days"`
	CreatedAt        string          `json:"created_at"`
}

// UserService owns the identity directory: registration (manager-only),
// login-token issuance, and the personnel lookups the dispatch and dashboard
// surfaces need.
type UserService interface {
	Register(ctx context.Context, actor Actor, req RegisterUserRequest) (UserResponse, error)
	Login(ctx context.Context, req LoginUserRequest) (TokenResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (UserResponse, error)
	ListDeliveryPersonnel(ctx context.Context) ([]UserResponse, error)
	ListEmployees(ctx context.Context) ([]UserResponse, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func mapToUserResponse(user *model.User) UserResponse {
	res := UserResponse{
		ID:             user.ID.String(),
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		RoleKey:        user.RoleKey,
		PTOBalanceDays: user.PTOBalanceDays,
		CreatedAt:      user.CreatedAt.Format(time.RFC3339),
	}
	if user.ReportingManagerID != nil {
		id := user.ReportingManagerID.String()
		res.ReportingManager = &id
	}
	return res
}

func (s *userService) Register(ctx context.Context, actor Actor, req RegisterUserRequest) (UserResponse, error) {
	if !actor.Can(model.ManagerRoles) {
		return UserResponse{}, apperr.Authorization("only managers may register users")
	}
	if !model.ValidRole(req.RoleKey) {
		return UserResponse{}, apperr.Newf(apperr.KindValidation, "invalid role_key: %s", req.RoleKey)
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return UserResponse{}, apperr.Conflict("email already registered")
	}

	var managerID *uuid.UUID
	if req.ReportingManager != "" {
		parsed, parseErr := uuid.Parse(req.ReportingManager)
		if parseErr != nil {
			return UserResponse{}, apperr.Validation("invalid reporting_manager id")
		}
		if _, findErr := s.repo.GetByID(ctx, parsed); findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return UserResponse{}, apperr.Validation("reporting_manager not found")
			}
			return UserResponse{}, fmt.Errorf("failed to resolve reporting manager: %w", findErr)
		}
		managerID = &parsed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:              req.Email,
		Password:           string(hashedPassword),
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		RoleKey:            req.RoleKey,
		ReportingManagerID: managerID,
		PTOBalanceDays:     decimal.NewFromFloat(10.0),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return mapToUserResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginUserRequest) (TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return TokenResponse{}, apperr.Authentication("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return TokenResponse{}, apperr.Authentication("invalid email or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       user.ID.String(),
		"role":      user.RoleKey,
		"superuser": user.IsSuperuser,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	})

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_super_secret_key"
	}

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return TokenResponse{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return TokenResponse{Token: tokenString}, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, apperr.NotFound("user not found")
		}
		return UserResponse{}, fmt.Errorf("failed to load user: %w", err)
	}
	return mapToUserResponse(user), nil
}

func (s *userService) ListDeliveryPersonnel(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.ListByRole(ctx, model.RoleDelivery)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery personnel: %w", err)
	}

	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, mapToUserResponse(&users[i]))
	}
	return result, nil
}

func (s *userService) ListEmployees(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, mapToUserResponse(&users[i]))
	}
	return result, nil
}
