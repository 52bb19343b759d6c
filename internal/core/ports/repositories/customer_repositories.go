package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// CustomerReader defines read operations for customers
type CustomerReader interface {
	// FindCustomer looks a customer up by normalized name first, then by phone.
	FindCustomer(ctx context.Context, nameOrPhone string) (*domain.Customer, error)

	// SearchCustomers returns up to limit customers whose name contains fragment (case-insensitive).
	SearchCustomers(ctx context.Context, fragment string, limit int) ([]domain.Customer, error)

	// ListDebtors returns customers with a positive balance, highest debt first.
	ListDebtors(ctx context.Context, limit int) ([]domain.Customer, error)

	// ListCustomerHistory returns the balance history of a customer, newest first.
	ListCustomerHistory(ctx context.Context, customerName string, limit int) ([]domain.CustomerHistoryEntry, error)
}

// CustomerWriter defines write operations for customers
type CustomerWriter interface {
	// AdjustCustomerDebt finds the customer by name or creates it, atomically adds delta
	// to its debt and appends a history entry: OPENING when this call created the
	// customer, ADJUSTMENT otherwise. Phone is only set when not empty.
	AdjustCustomerDebt(ctx context.Context, name, phone string, delta domain.Money, actor, note string, at time.Time) (*domain.Customer, error)
}

// CustomerRepositoryFacade combines all customer repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
