package services

import (
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, recorder portssvc.LedgerRecorder) *portssvc.ServiceContainer {
	movementOpts := []MovementServiceOption{
		WithVoidPolicy(cfg.VoidPolicy),
		WithShopLocation(cfg.ShopLocation),
	}
	if recorder != nil {
		movementOpts = append(movementOpts, WithLedgerRecorder(recorder))
	}

	return &portssvc.ServiceContainer{
		Movement:  NewMovementService(repos.MovementRepo, movementOpts...),
		Customer:  NewCustomerService(repos.CustomerRepo),
		Payee:     NewPayeeService(repos.PayeeRepo),
		Reporting: NewReportingService(repos.MovementRepo, WithRestrictedHistoryLimit(cfg.RestrictedHistoryLimit)),
		Export:    NewExportService(repos.SnapshotRepo),
		Auth:      NewAuthService(cfg.Users),
		Token:     NewTokenService(cfg),
	}
}
