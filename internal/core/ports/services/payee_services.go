package services

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/dto"
)

// PayeeSvcFacade defines operations on payees
type PayeeSvcFacade interface {
	// ListPayees returns every payee projected for role.
	ListPayees(ctx context.Context, role domain.Role) ([]domain.PayeeView, error)
	// UpsertPayee creates a payee or tops up what the shop owes it. Requires a full-access role.
	UpsertPayee(ctx context.Context, req dto.UpsertPayeeRequest, actor string, role domain.Role) (*domain.Payee, error)
}
