package services

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// ExportSvc produces full-state backups.
type ExportSvc interface {
	// Export returns a consistent snapshot of customers, payees, movements and history.
	// Requires a full-access role.
	Export(ctx context.Context, role domain.Role) (*domain.Snapshot, error)
}
