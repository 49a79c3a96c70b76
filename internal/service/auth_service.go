package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// AuthService coordinates login and account management.
type AuthService struct {
	users      repository.UserRepository
	schools    repository.SchoolRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// RegisterInput carries fields for account creation.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.UserRole
	SchoolID *string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, schools repository.SchoolRepository) *AuthService {
	return &AuthService{
		users:      users,
		schools:    schools,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a portal account. school_admin accounts must name an
// existing school.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name, email, password required", nil)
	}
	if input.Role == "" {
		input.Role = domain.UserRoleSchoolAdmin
	}
	if !domain.ValidUserRole(input.Role) {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
	}
	if input.Role == domain.UserRoleSchoolAdmin {
		if input.SchoolID == nil {
			return nil, apperrors.NewValidationError("school_id required for school_admin", nil)
		}
		if _, err := s.schools.GetByID(ctx, *input.SchoolID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("school", map[string]any{"school_id": *input.SchoolID})
			}
			return nil, apperrors.MapError(err)
		}
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		SchoolID:     input.SchoolID,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Login authenticates an account and returns a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if user.Status != domain.UserStatusActive {
		return nil, "", time.Time{}, apperrors.NewForbidden("account is not active")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// ListUsers returns portal accounts.
func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// UpdateUser patches role/status/school of an account.
func (s *AuthService) UpdateUser(ctx context.Context, id string, role *domain.UserRole, status *domain.UserStatus, schoolID *string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if role != nil {
		if !domain.ValidUserRole(*role) {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": *role})
		}
		user.Role = *role
	}
	if status != nil {
		if !domain.ValidUserStatus(*status) {
			return nil, apperrors.NewInvalidStatus(string(*status))
		}
		user.Status = *status
	}
	if schoolID != nil {
		user.SchoolID = schoolID
	}
	if user.Role == domain.UserRoleSchoolAdmin && user.SchoolID == nil {
		return nil, apperrors.NewValidationError("school_admin requires a school", nil)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
