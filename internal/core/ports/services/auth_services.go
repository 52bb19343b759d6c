package services

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// AuthSvcFacade authenticates operators against the configured credential list.
type AuthSvcFacade interface {
	// Authenticate checks username and password and returns the matching user.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
