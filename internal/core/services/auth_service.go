package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/platform/config"
	"github.com/SscSPs/shop_ledger/internal/utils"
)

// authService checks credentials against the static user list from configuration.
type authService struct {
	BaseService
	users map[string]domain.User
}

// NewAuthService creates an auth service over the configured users.
func NewAuthService(users []domain.User) portssvc.AuthSvcFacade {
	byName := make(map[string]domain.User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	return &authService{users: byName}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Authenticate returns the user when the password matches its bcrypt hash.
// Unknown users and wrong passwords fail the same way.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, ok := s.users[username]
	if !ok || !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.GetLogger(ctx).Warn("Login failed", slog.String("username", username))
		return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}
	s.LogInfo(ctx, "Login succeeded", slog.String("username", username), slog.String("role", string(user.Role)))
	return &user, nil
}

// tokenService implements the TokenSvcFacade for issuing JWT access tokens.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	return utils.GenerateJWT(user.Username, user.Role, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
}
