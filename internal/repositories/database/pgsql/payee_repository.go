package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/models"
	"github.com/SscSPs/shop_ledger/internal/utils/mapping"
)

const payeeColumns = `name, alias, amount_owed, warning_cap, created_at, last_updated_at`

type PgxPayeeRepository struct {
	BaseRepository
}

// newPgxPayeeRepository creates a new repository for payee data.
func newPgxPayeeRepository(pool *pgxpool.Pool) *PgxPayeeRepository {
	return &PgxPayeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PayeeRepositoryFacade = (*PgxPayeeRepository)(nil)

func scanPayee(row pgx.Row) (domain.Payee, error) {
	var m models.Payee
	if err := row.Scan(&m.Name, &m.Alias, &m.AmountOwed, &m.WarningCap, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
		return domain.Payee{}, err
	}
	return mapping.ToDomainPayee(m), nil
}

// applyPayeeDelta adds delta to the owed amount floored at zero and returns the delta
// actually applied. The previous value is read under a row lock taken by the same
// transaction, so the difference is exact.
func applyPayeeDelta(ctx context.Context, q querier, name string, delta domain.Money, at time.Time) (domain.Money, error) {
	var before, after int64
	err := q.QueryRow(ctx, `SELECT amount_owed FROM payees WHERE name = $1 FOR UPDATE;`, name).Scan(&before)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewNotFoundError("payee " + name + " not found")
		}
		return 0, apperrors.NewStoreError("failed to lock payee "+name, err)
	}
	err = q.QueryRow(ctx, `
		UPDATE payees SET amount_owed = GREATEST(0, amount_owed + $2), last_updated_at = $3
		WHERE name = $1
		RETURNING amount_owed;`,
		name, int64(delta), at,
	).Scan(&after)
	if err != nil {
		return 0, apperrors.NewStoreError("failed to update payee "+name, err)
	}
	return domain.Money(after - before), nil
}

// FindPayeeByName retrieves a payee by its normalized name.
func (r *PgxPayeeRepository) FindPayeeByName(ctx context.Context, name string) (*domain.Payee, error) {
	key := domain.NormalizeName(name)
	payee, err := scanPayee(r.Pool.QueryRow(ctx, `SELECT `+payeeColumns+` FROM payees WHERE name = $1;`, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payee " + key + " not found")
		}
		return nil, apperrors.NewStoreError("failed to find payee "+key, err)
	}
	return &payee, nil
}

// ListPayees returns all payees ordered by name.
func (r *PgxPayeeRepository) ListPayees(ctx context.Context) ([]domain.Payee, error) {
	return listPayees(ctx, r.Pool)
}

func listPayees(ctx context.Context, q querier) ([]domain.Payee, error) {
	rows, err := q.Query(ctx, `SELECT `+payeeColumns+` FROM payees ORDER BY name;`)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list payees", err)
	}
	defer rows.Close()
	out := make([]domain.Payee, 0)
	for rows.Next() {
		p, err := scanPayee(rows)
		if err != nil {
			return nil, apperrors.NewStoreError("failed to read payee", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("failed to read payees", err)
	}
	return out, nil
}

// UpsertPayee creates the payee or adds topUp to what the shop owes it.
func (r *PgxPayeeRepository) UpsertPayee(ctx context.Context, name, alias string, topUp domain.Money, warningCap *domain.Money, at time.Time) (*domain.Payee, error) {
	key := domain.NormalizeName(name)
	payee, err := scanPayee(r.Pool.QueryRow(ctx, `
		INSERT INTO payees (name, alias, amount_owed, warning_cap, created_at, last_updated_at)
		VALUES ($1, COALESCE(NULLIF($2, ''), $1), $3, $4, $5, $5)
		ON CONFLICT (name) DO UPDATE SET
			amount_owed     = payees.amount_owed + EXCLUDED.amount_owed,
			alias           = COALESCE(NULLIF($2, ''), payees.alias),
			warning_cap     = COALESCE(EXCLUDED.warning_cap, payees.warning_cap),
			last_updated_at = EXCLUDED.last_updated_at
		RETURNING `+payeeColumns+`;`,
		key, alias, int64(topUp), mapping.ToModelWarningCap(warningCap), at,
	))
	if err != nil {
		return nil, apperrors.NewStoreError("failed to upsert payee "+key, err)
	}
	return &payee, nil
}
