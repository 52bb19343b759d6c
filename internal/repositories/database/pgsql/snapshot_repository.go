package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
)

type PgxSnapshotRepository struct {
	BaseRepository
}

func newPgxSnapshotRepository(pool *pgxpool.Pool) *PgxSnapshotRepository {
	return &PgxSnapshotRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SnapshotReader = (*PgxSnapshotRepository)(nil)

// Snapshot reads every table inside one REPEATABLE READ, READ ONLY transaction.
func (r *PgxSnapshotRepository) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, apperrors.NewStoreError("failed to begin snapshot", err)
	}
	defer r.Rollback(ctx, tx)

	snap := &domain.Snapshot{TakenAt: time.Now().UTC()}

	rows, err := tx.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name;`)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to export customers", err)
	}
	if snap.Customers, err = collectCustomers(rows); err != nil {
		return nil, apperrors.NewStoreError("failed to read customers", err)
	}

	if snap.Payees, err = listPayees(ctx, tx); err != nil {
		return nil, err
	}

	rows, err = tx.Query(ctx, `SELECT `+movementColumns+` FROM movements ORDER BY created_at DESC, movement_id DESC;`)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to export movements", err)
	}
	if snap.Movements, err = collectMovements(rows); err != nil {
		return nil, apperrors.NewStoreError("failed to read movements", err)
	}

	rows, err = tx.Query(ctx, `
		SELECT history_id, customer_name, at, delta, balance_after, action, movement_id, actor, note
		FROM customer_history ORDER BY history_id;`)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to export history", err)
	}
	if snap.History, err = collectHistory(rows); err != nil {
		return nil, apperrors.NewStoreError("failed to read history", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return snap, nil
}
