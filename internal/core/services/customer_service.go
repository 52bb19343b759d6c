package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
)

const (
	customerSearchLimit = 10
	debtorListLimit     = 50
	historyLimit        = 300
)

type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new customer service.
func NewCustomerService(repo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: repo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// GetCustomer finds a customer by name or phone.
func (s *customerService) GetCustomer(ctx context.Context, nameOrPhone string) (*domain.Customer, error) {
	key := strings.TrimSpace(nameOrPhone)
	if key == "" {
		return nil, apperrors.NewValidationError("customer name or phone is required")
	}
	customer, err := s.customerRepo.FindCustomer(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return customer, nil
}

// ListCustomers searches by name fragment, or lists debtors by highest debt when the query is empty.
func (s *customerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error) {
	query := strings.TrimSpace(params.Query)
	var (
		customers []domain.Customer
		err       error
	)
	if query != "" {
		limit := params.Limit
		if limit <= 0 {
			limit = customerSearchLimit
		}
		customers, err = s.customerRepo.SearchCustomers(ctx, query, limit)
	} else {
		limit := params.Limit
		if limit <= 0 {
			limit = debtorListLimit
		}
		customers, err = s.customerRepo.ListDebtors(ctx, limit)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers", slog.String("query", query))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// GetCustomerHistory returns the customer and its balance trail, newest first.
func (s *customerService) GetCustomerHistory(ctx context.Context, nameOrPhone string, role domain.Role) (*domain.Customer, []domain.CustomerHistoryEntry, error) {
	if err := s.RequireFullAccess(ctx, role, "view customer history"); err != nil {
		return nil, nil, err
	}
	customer, err := s.GetCustomer(ctx, nameOrPhone)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.customerRepo.ListCustomerHistory(ctx, customer.Name, historyLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to load customer history", slog.String("customer", customer.Name))
		return nil, nil, fmt.Errorf("failed to load customer history: %w", err)
	}
	return customer, history, nil
}

// AdjustDebt applies a manual change to a customer's debt, creating the customer on first use.
func (s *customerService) AdjustDebt(ctx context.Context, req dto.AdjustCustomerDebtRequest, actor string, role domain.Role) (*domain.Customer, error) {
	if err := s.RequireFullAccess(ctx, role, "adjust customer debt"); err != nil {
		return nil, err
	}
	name := domain.NormalizeName(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("customer name is required")
	}
	if !req.Delta.InRange() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("delta %s exceeds %s", req.Delta, domain.MaxAmount))
	}

	customer, err := s.customerRepo.AdjustCustomerDebt(ctx, name, strings.TrimSpace(req.Phone), req.Delta, actor, req.Note, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to adjust customer debt", slog.String("customer", name))
		return nil, fmt.Errorf("failed to adjust customer debt: %w", err)
	}

	s.LogInfo(ctx, "Customer debt adjusted",
		slog.String("customer", name),
		slog.String("delta", req.Delta.String()),
		slog.String("balance", customer.DebtBalance.String()))
	return customer, nil
}
