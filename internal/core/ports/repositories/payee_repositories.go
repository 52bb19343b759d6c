package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// PayeeReader defines read operations for payees
type PayeeReader interface {
	FindPayeeByName(ctx context.Context, name string) (*domain.Payee, error)
	// ListPayees returns all payees ordered by name.
	ListPayees(ctx context.Context) ([]domain.Payee, error)
}

// PayeeWriter defines write operations for payees
type PayeeWriter interface {
	// UpsertPayee creates the payee or atomically adds topUp to what the shop owes it.
	// Alias and warningCap replace the stored values when non-empty / non-nil.
	UpsertPayee(ctx context.Context, name, alias string, topUp domain.Money, warningCap *domain.Money, at time.Time) (*domain.Payee, error)
}

// PayeeRepositoryFacade combines all payee repository interfaces
type PayeeRepositoryFacade interface {
	PayeeReader
	PayeeWriter
}
