package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/models"
	"github.com/SscSPs/shop_ledger/internal/utils/mapping"
	"github.com/SscSPs/shop_ledger/internal/utils/pagination"
)

const movementColumns = `movement_id, kind, recorded_by, physical_custodian, note, created_at,
	display_date, display_time, voided, voided_at, voided_by,
	gross_amount, customer_name, payment_method, cash_amount, card_amount, transfer_amount, system_amount,
	payee_name, payee_settled, description, expense_amount, declared_amount`

type PgxMovementRepository struct {
	BaseRepository
}

// newPgxMovementRepository creates a new repository for movements and their balance effects.
func newPgxMovementRepository(pool *pgxpool.Pool) *PgxMovementRepository {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxMovementRepository implements portsrepo.MovementRepositoryFacade
var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

func scanMovement(row pgx.Row) (models.Movement, error) {
	var m models.Movement
	err := row.Scan(
		&m.MovementID, &m.Kind, &m.RecordedBy, &m.PhysicalCustodian, &m.Note, &m.CreatedAt,
		&m.DisplayDate, &m.DisplayTime, &m.Voided, &m.VoidedAt, &m.VoidedBy,
		&m.GrossAmount, &m.Customer, &m.PaymentMethod, &m.CashAmount, &m.CardAmount, &m.TransferAmount, &m.SystemAmount,
		&m.Payee, &m.PayeeSettled, &m.Description, &m.ExpenseAmount, &m.DeclaredAmount,
	)
	return m, err
}

func collectMovements(rows pgx.Rows) ([]domain.Movement, error) {
	defer rows.Close()
	var out []models.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mapping.ToDomainMovementSlice(out)
}

// SaveMovement inserts the movement and applies its balance effect in one transaction.
func (r *PgxMovementRepository) SaveMovement(ctx context.Context, movement domain.Movement, effect domain.BalanceEffect) (*domain.Movement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Ignored once committed

	// 1. Payee first: a missing payee aborts before anything is written.
	if effect.TouchesPayee() {
		applied, err := applyPayeeDelta(ctx, tx, effect.PayeeName, effect.PayeeDelta, movement.CreatedAt)
		if err != nil {
			return nil, err
		}
		if sale, ok := movement.Sale(); ok {
			settled := *sale
			settled.PayeeSettled = -applied
			movement.Detail = &settled
		}
	}

	// 2. Customer debt and its history row
	if effect.TouchesCustomer() {
		if _, err := applyCustomerEffect(ctx, tx, effect, movement.CreatedAt, ""); err != nil {
			return nil, err
		}
	}

	// 3. The movement itself
	row := mapping.ToModelMovement(movement)
	_, err = tx.Exec(ctx, `
		INSERT INTO movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);`,
		row.MovementID, row.Kind, row.RecordedBy, row.PhysicalCustodian, row.Note, row.CreatedAt,
		row.DisplayDate, row.DisplayTime, row.Voided, row.VoidedAt, row.VoidedBy,
		row.GrossAmount, row.Customer, row.PaymentMethod, row.CashAmount, row.CardAmount, row.TransferAmount, row.SystemAmount,
		row.Payee, row.PayeeSettled, row.Description, row.ExpenseAmount, row.DeclaredAmount,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewAppError(http.StatusConflict, "movement "+row.MovementID+" already exists", apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewStoreError("failed to insert movement "+row.MovementID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &movement, nil
}

// VoidMovement flips the voided flag with a conditional update and applies the reversal
// in the same transaction.
func (r *PgxMovementRepository) VoidMovement(ctx context.Context, movementID, actor string, voidedAt time.Time, reversal domain.BalanceEffect) (*domain.Movement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	row, err := scanMovement(tx.QueryRow(ctx, `
		UPDATE movements SET voided = TRUE, voided_at = $2, voided_by = $3
		WHERE movement_id = $1 AND voided = FALSE
		RETURNING `+movementColumns+`;`,
		movementID, voidedAt, actor,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movements WHERE movement_id = $1);`, movementID).Scan(&exists); err != nil {
			return nil, apperrors.NewStoreError("failed to check movement "+movementID, err)
		}
		if !exists {
			return nil, apperrors.NewNotFoundError("movement " + movementID + " not found")
		}
		return nil, apperrors.ErrAlreadyVoided
	}
	if err != nil {
		return nil, apperrors.NewStoreError("failed to void movement "+movementID, err)
	}

	if reversal.TouchesPayee() {
		if _, err := applyPayeeDelta(ctx, tx, reversal.PayeeName, reversal.PayeeDelta, voidedAt); err != nil {
			return nil, err
		}
	}
	if reversal.TouchesCustomer() {
		if _, err := applyCustomerEffect(ctx, tx, reversal, voidedAt, ""); err != nil {
			return nil, err
		}
	}

	movement, err := mapping.ToDomainMovement(row)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to decode movement "+movementID, err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &movement, nil
}

// FindMovementByID retrieves a movement by its ID.
func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	row, err := scanMovement(r.Pool.QueryRow(ctx, `SELECT `+movementColumns+` FROM movements WHERE movement_id = $1;`, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("movement " + movementID + " not found")
		}
		return nil, apperrors.NewStoreError("failed to find movement "+movementID, err)
	}
	movement, err := mapping.ToDomainMovement(row)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to decode movement "+movementID, err)
	}
	return &movement, nil
}

// ListMovementsInRange returns every movement in the window, voided included, newest first.
func (r *PgxMovementRepository) ListMovementsInRange(ctx context.Context, window domain.Window) ([]domain.Movement, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+movementColumns+`
		FROM movements
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
		ORDER BY created_at DESC, movement_id DESC;`,
		window.From, window.To,
	)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to query movements", err)
	}
	movements, err := collectMovements(rows)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to read movements", err)
	}
	return movements, nil
}

// ListMovements retrieves a page of movements using keyset pagination on (created_at, movement_id).
func (r *PgxMovementRepository) ListMovements(ctx context.Context, limit int, nextToken *string) ([]domain.Movement, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1 // one extra row tells us whether there is a next page

	baseQuery := `SELECT ` + movementColumns + ` FROM movements`
	orderByClause := `ORDER BY created_at DESC, movement_id DESC`
	args := []any{}
	cursorClause := ""
	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewValidationError(fmt.Sprintf("invalid nextToken: %v", decodeErr))
		}
		cursorClause = `WHERE (created_at, movement_id) < ($1, $2)`
		args = append(args, cursor.CreatedAt, cursor.ID)
	}
	query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewStoreError("failed to list movements", err)
	}
	movements, err := collectMovements(rows)
	if err != nil {
		return nil, nil, apperrors.NewStoreError("failed to read movements", err)
	}

	var next *string
	if len(movements) > limit {
		movements = movements[:limit]
		last := movements[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.MovementID)
		next = &token
	}
	return movements, next, nil
}
