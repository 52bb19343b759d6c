package pgsql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/models"
	"github.com/SscSPs/shop_ledger/internal/utils/mapping"
)

const customerColumns = `name, phone, debt_balance, created_at, last_updated_at`

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) *PgxCustomerRepository {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func scanCustomer(row pgx.Row) (domain.Customer, error) {
	var m models.Customer
	if err := row.Scan(&m.Name, &m.Phone, &m.DebtBalance, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
		return domain.Customer{}, err
	}
	return mapping.ToDomainCustomer(m), nil
}

func collectCustomers(rows pgx.Rows) ([]domain.Customer, error) {
	defer rows.Close()
	out := make([]domain.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// applyCustomerEffect finds or creates the customer and adds the debt delta in a single
// statement, then appends the history row. It must run inside the caller's transaction.
// An ADJUSTMENT that creates the customer is recorded as OPENING; xmax is zero only on
// the row version written by the INSERT branch.
func applyCustomerEffect(ctx context.Context, q querier, effect domain.BalanceEffect, at time.Time, note string) (domain.Customer, error) {
	var (
		m        models.Customer
		inserted bool
	)
	err := q.QueryRow(ctx, `
		INSERT INTO customers (name, phone, debt_balance, created_at, last_updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $4)
		ON CONFLICT (name) DO UPDATE SET
			debt_balance    = customers.debt_balance + EXCLUDED.debt_balance,
			phone           = COALESCE(EXCLUDED.phone, customers.phone),
			last_updated_at = EXCLUDED.last_updated_at
		RETURNING `+customerColumns+`, (xmax = 0) AS inserted;`,
		effect.CustomerName, effect.CustomerPhone, int64(effect.DebtDelta), at,
	).Scan(&m.Name, &m.Phone, &m.DebtBalance, &m.CreatedAt, &m.LastUpdatedAt, &inserted)
	if err != nil {
		return domain.Customer{}, apperrors.NewStoreError("failed to update customer "+effect.CustomerName, err)
	}
	customer := mapping.ToDomainCustomer(m)
	if inserted && effect.Action == domain.HistoryAdjustment {
		effect.Action = domain.HistoryOpening
	}

	if effect.DebtDelta == 0 && effect.Action != domain.HistoryOpening && effect.Action != domain.HistoryAdjustment {
		return customer, nil
	}
	h := mapping.ToModelCustomerHistory(domain.CustomerHistoryEntry{
		CustomerName: customer.Name,
		At:           at,
		Delta:        effect.DebtDelta,
		BalanceAfter: customer.DebtBalance,
		Action:       effect.Action,
		MovementID:   effect.MovementID,
		Actor:        effect.Actor,
		Note:         note,
	})
	_, err = q.Exec(ctx, `
		INSERT INTO customer_history (customer_name, at, delta, balance_after, action, movement_id, actor, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		h.CustomerName, h.At, h.Delta, h.BalanceAfter, h.Action, h.MovementID, h.Actor, h.Note,
	)
	if err != nil {
		return domain.Customer{}, apperrors.NewStoreError("failed to append history for "+customer.Name, err)
	}
	return customer, nil
}

// FindCustomer looks a customer up by normalized name, falling back to phone.
func (r *PgxCustomerRepository) FindCustomer(ctx context.Context, nameOrPhone string) (*domain.Customer, error) {
	customer, err := scanCustomer(r.Pool.QueryRow(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE name = $1 OR phone = $2
		ORDER BY (name = $1) DESC
		LIMIT 1;`,
		domain.NormalizeName(nameOrPhone), strings.TrimSpace(nameOrPhone),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("customer " + nameOrPhone + " not found")
		}
		return nil, apperrors.NewStoreError("failed to find customer", err)
	}
	return &customer, nil
}

// likeEscaper makes LIKE wildcards in user input match literally (ESCAPE '\').
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// SearchCustomers matches a name fragment case-insensitively. The fragment is literal.
func (r *PgxCustomerRepository) SearchCustomers(ctx context.Context, fragment string, limit int) ([]domain.Customer, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE name ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY name
		LIMIT $2;`,
		escapeLike(domain.NormalizeName(fragment)), limit,
	)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to search customers", err)
	}
	customers, err := collectCustomers(rows)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to read customers", err)
	}
	return customers, nil
}

// ListDebtors returns customers that owe money, highest debt first.
func (r *PgxCustomerRepository) ListDebtors(ctx context.Context, limit int) ([]domain.Customer, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE debt_balance > 0
		ORDER BY debt_balance DESC, name
		LIMIT $1;`, limit)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list debtors", err)
	}
	customers, err := collectCustomers(rows)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to read customers", err)
	}
	return customers, nil
}

// ListCustomerHistory returns the balance trail of a customer, newest first.
func (r *PgxCustomerRepository) ListCustomerHistory(ctx context.Context, customerName string, limit int) ([]domain.CustomerHistoryEntry, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT history_id, customer_name, at, delta, balance_after, action, movement_id, actor, note
		FROM customer_history
		WHERE customer_name = $1
		ORDER BY history_id DESC
		LIMIT $2;`, customerName, limit)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to query customer history", err)
	}
	history, err := collectHistory(rows)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to read customer history", err)
	}
	return history, nil
}

func collectHistory(rows pgx.Rows) ([]domain.CustomerHistoryEntry, error) {
	defer rows.Close()
	out := make([]domain.CustomerHistoryEntry, 0)
	for rows.Next() {
		var h models.CustomerHistory
		if err := rows.Scan(&h.HistoryID, &h.CustomerName, &h.At, &h.Delta, &h.BalanceAfter, &h.Action, &h.MovementID, &h.Actor, &h.Note); err != nil {
			return nil, err
		}
		out = append(out, mapping.ToDomainCustomerHistory(h))
	}
	return out, rows.Err()
}

// AdjustCustomerDebt applies a manual delta and its history row in one transaction.
func (r *PgxCustomerRepository) AdjustCustomerDebt(ctx context.Context, name, phone string, delta domain.Money, actor, note string, at time.Time) (*domain.Customer, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	customer, err := applyCustomerEffect(ctx, tx, domain.BalanceEffect{
		Actor:         actor,
		Action:        domain.HistoryAdjustment,
		CustomerName:  domain.NormalizeName(name),
		CustomerPhone: phone,
		DebtDelta:     delta,
	}, at, note)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &customer, nil
}
