package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MovementRepo: newPgxMovementRepository(dbPool),
		CustomerRepo: newPgxCustomerRepository(dbPool),
		PayeeRepo:    newPgxPayeeRepository(dbPool),
		SnapshotRepo: newPgxSnapshotRepository(dbPool),
	}
}
