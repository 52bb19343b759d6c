package services

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/dto"
)

// CustomerReaderSvc defines read operations for customers
type CustomerReaderSvc interface {
	GetCustomer(ctx context.Context, nameOrPhone string) (*domain.Customer, error)
	// ListCustomers searches by name fragment, or ranks debtors when no query is given.
	ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error)
	// GetCustomerHistory returns the customer's balance trail. Requires a full-access role.
	GetCustomerHistory(ctx context.Context, nameOrPhone string, role domain.Role) (*domain.Customer, []domain.CustomerHistoryEntry, error)
}

// CustomerWriterSvc defines write operations for customers
type CustomerWriterSvc interface {
	// AdjustDebt applies a manual debt change, creating the customer when needed. Requires a full-access role.
	AdjustDebt(ctx context.Context, req dto.AdjustCustomerDebtRequest, actor string, role domain.Role) (*domain.Customer, error)
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}
