package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// MovementReader defines read operations for ledger movements
type MovementReader interface {
	// FindMovementByID retrieves a movement by its unique identifier.
	FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// ListMovementsInRange returns every movement (voided included) whose createdAt falls inside window.
	ListMovementsInRange(ctx context.Context, window domain.Window) ([]domain.Movement, error)

	// ListMovements retrieves a page of movements, newest first, using token-based pagination.
	// It returns the movements, a token for the next page, and an error.
	ListMovements(ctx context.Context, limit int, nextToken *string) ([]domain.Movement, *string, error)
}

// MovementWriter defines the atomic ledger mutations.
type MovementWriter interface {
	// SaveMovement inserts the movement and applies effect in one unit: the customer is
	// found or created and its debt incremented, a history entry is appended, and the payee
	// balance is decremented with a zero floor. A missing payee fails with ErrNotFound and
	// nothing is written. The stored movement is returned with PayeeSettled filled in.
	SaveMovement(ctx context.Context, movement domain.Movement, effect domain.BalanceEffect) (*domain.Movement, error)

	// VoidMovement marks the movement voided only if it is not voided yet and applies
	// reversal in the same unit. A second call fails with ErrAlreadyVoided and changes nothing.
	VoidMovement(ctx context.Context, movementID, actor string, voidedAt time.Time, reversal domain.BalanceEffect) (*domain.Movement, error)
}

// MovementRepositoryFacade combines all movement repository interfaces
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}
