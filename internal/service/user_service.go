package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/bitwharf/helpdesk/internal/auth"
	"github.com/bitwharf/helpdesk/internal/domain"
	"github.com/bitwharf/helpdesk/internal/policy"
	"github.com/bitwharf/helpdesk/internal/repository"
	apperrors "github.com/bitwharf/helpdesk/pkg/util"
)

const minPasswordLen = 6

// UserService covers the manager-only account administration surface.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// UserCreateInput describes registration payload.
type UserCreateInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Register creates a new account. Only managers may register accounts.
func (s *UserService) Register(ctx context.Context, p domain.Principal, input UserCreateInput) (*domain.User, error) {
	if policy.Check(p, policy.ActionRegisterUser, nil) != policy.Allow {
		return nil, apperrors.NewForbidden()
	}

	if len(input.Password) < minPasswordLen {
		return nil, apperrors.NewValidationError("password too short", map[string]any{"min_length": minPasswordLen})
	}
	if _, ok := domain.ParseRole(string(input.Role)); !ok {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": string(input.Role)})
	}
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewValidationError("email already registered", nil)
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
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// List returns all accounts for the manager dashboard.
func (s *UserService) List(ctx context.Context, p domain.Principal) ([]domain.User, error) {
	if policy.Check(p, policy.ActionListUsers, nil) != policy.Allow {
		return nil, apperrors.NewForbidden()
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}
