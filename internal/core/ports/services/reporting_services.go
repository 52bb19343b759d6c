package services

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// ReportingService defines operations for generating ledger reports
type ReportingService interface {
	// Reconciliation aggregates the movements inside window and projects the result for role.
	Reconciliation(ctx context.Context, window domain.Window, role domain.Role) (*domain.ReportView, error)
}
