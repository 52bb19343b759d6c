package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/utils/accounting"
)

type payeeService struct {
	BaseService
	payeeRepo portsrepo.PayeeRepositoryFacade
}

// NewPayeeService creates a new payee service.
func NewPayeeService(repo portsrepo.PayeeRepositoryFacade) portssvc.PayeeSvcFacade {
	return &payeeService{payeeRepo: repo}
}

var _ portssvc.PayeeSvcFacade = (*payeeService)(nil)

// ListPayees returns all payees as role may see them.
func (s *payeeService) ListPayees(ctx context.Context, role domain.Role) ([]domain.PayeeView, error) {
	payees, err := s.payeeRepo.ListPayees(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payees")
		return nil, fmt.Errorf("failed to list payees: %w", err)
	}
	return accounting.ProjectPayees(payees, role), nil
}

// UpsertPayee creates a payee or adds to what the shop owes it.
func (s *payeeService) UpsertPayee(ctx context.Context, req dto.UpsertPayeeRequest, actor string, role domain.Role) (*domain.Payee, error) {
	if err := s.RequireFullAccess(ctx, role, "update payee"); err != nil {
		return nil, err
	}
	name := domain.NormalizeName(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("payee name is required")
	}
	if req.TopUp.IsNegative() {
		return nil, apperrors.NewValidationError("top-up must not be negative")
	}
	if !req.TopUp.InRange() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("top-up %s exceeds %s", req.TopUp, domain.MaxAmount))
	}
	if req.WarningCap != nil && req.WarningCap.IsNegative() {
		return nil, apperrors.NewValidationError("warning cap must not be negative")
	}

	payee, err := s.payeeRepo.UpsertPayee(ctx, name, req.Alias, req.TopUp, req.WarningCap, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert payee", slog.String("payee", name))
		return nil, fmt.Errorf("failed to upsert payee: %w", err)
	}

	s.LogInfo(ctx, "Payee updated",
		slog.String("payee", name),
		slog.String("actor", actor),
		slog.String("top_up", req.TopUp.String()),
		slog.String("owed", payee.AmountOwed.String()))
	return payee, nil
}
