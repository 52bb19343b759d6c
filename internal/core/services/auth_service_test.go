package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/shop_ledger/internal/repositories/database/memory"
	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/core/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/platform/config"
	"github.com/SscSPs/shop_ledger/internal/utils"
)

func TestAuthService_Authenticate(t *testing.T) {
	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)
	svc := services.NewAuthService([]domain.User{{Username: "jefa", Role: domain.RoleOwner, PasswordHash: hash}})
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, "jefa", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOwner, user.Role)

	_, err = svc.Authenticate(ctx, "jefa", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenService_GenerateAccessToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryDuration: time.Hour, JWTIssuer: "shop-ledger"}
	svc := services.NewTokenService(cfg)

	token, expiresAt, err := svc.GenerateAccessToken(context.Background(), &domain.User{Username: "caja1", Role: domain.RoleEmployee})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "caja1", claims.Subject)
	assert.Equal(t, domain.RoleEmployee, claims.Role)
}

func TestExportService_Export(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Provider()
	movements := services.NewMovementService(repos.MovementRepo)
	export := services.NewExportService(repos.SnapshotRepo)

	_, err := movements.SubmitMovement(ctx, dto.CreateMovementRequest{
		Kind: domain.KindSale, GrossAmount: domain.MustMoney("50"), Customer: "ANA",
	}, "caja1")
	require.NoError(t, err)

	_, err = export.Export(ctx, domain.RoleEmployee)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	snap, err := export.Export(ctx, domain.RoleOwner)
	require.NoError(t, err)
	assert.Len(t, snap.Movements, 1)
	require.Len(t, snap.Customers, 1)
	assert.Equal(t, domain.MustMoney("50"), snap.Customers[0].DebtBalance)
	assert.Len(t, snap.History, 1)
}
