package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
)

type exportService struct {
	BaseService
	snapshotRepo portsrepo.SnapshotReader
}

// NewExportService creates a new export service.
func NewExportService(repo portsrepo.SnapshotReader) portssvc.ExportSvc {
	return &exportService{snapshotRepo: repo}
}

var _ portssvc.ExportSvc = (*exportService)(nil)

// Export reads the whole ledger in one snapshot.
func (s *exportService) Export(ctx context.Context, role domain.Role) (*domain.Snapshot, error) {
	if err := s.RequireFullAccess(ctx, role, "export"); err != nil {
		return nil, err
	}
	snapshot, err := s.snapshotRepo.Snapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to take ledger snapshot")
		return nil, fmt.Errorf("failed to take ledger snapshot: %w", err)
	}
	s.LogInfo(ctx, "Ledger exported",
		slog.Int("customers", len(snapshot.Customers)),
		slog.Int("payees", len(snapshot.Payees)),
		slog.Int("movements", len(snapshot.Movements)))
	return snapshot, nil
}
