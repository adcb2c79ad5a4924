package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bitwharf/helpdesk/internal/auth"
	"github.com/bitwharf/helpdesk/internal/config"
	"github.com/bitwharf/helpdesk/internal/domain"
	"github.com/bitwharf/helpdesk/internal/repository"
	apperrors "github.com/bitwharf/helpdesk/pkg/util"
)

// AuthService verifies credentials and issues tokens. The core trusts
// the Principal derived from those tokens and never re-checks here.
type AuthService struct {
	users     repository.UserRepository
	tokenMgr  *auth.TokenManager
	dummyHash string
}

// NewAuthService builds the service. The dummy hash is burned on login
// attempts for unknown emails so the miss path costs the same bcrypt
// work as a wrong password.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	dummyHash, err := auth.HashPassword("login-timing-pad", cfg.BcryptCost)
	if err != nil {
		dummyHash = ""
	}
	return &AuthService{
		users:     users,
		tokenMgr:  auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		dummyHash: dummyHash,
	}
}

// Login authenticates by email and password. Failures are reported
// uniformly so a caller cannot tell which emails exist, by response
// body or by timing.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = auth.ComparePassword(s.dummyHash, password)
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, expiresAt, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
