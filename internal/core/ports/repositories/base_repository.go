package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is implemented by SQL backed repositories that group a movement
// insert or void with its customer and payee updates in one transaction.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	// Rollback is a no-op on a transaction that was already committed.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
