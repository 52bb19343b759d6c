package repositories

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// SnapshotReader reads the full ledger state as one consistent snapshot.
type SnapshotReader interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
}
