package services

import (
	"context"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/dto"
)

// MovementReaderSvc defines read operations for movements
type MovementReaderSvc interface {
	// GetMovement retrieves a movement by id. Requires a full-access role.
	GetMovement(ctx context.Context, movementID string, role domain.Role) (*domain.Movement, error)

	// ListMovements retrieves a page of movement history, newest first. Requires a full-access role.
	ListMovements(ctx context.Context, params dto.ListMovementsParams, role domain.Role) ([]domain.Movement, *string, error)
}

// MovementWriterSvc defines the balance-mutating operations
type MovementWriterSvc interface {
	// SubmitMovement validates the request, builds the movement and applies its balance effect atomically.
	SubmitMovement(ctx context.Context, req dto.CreateMovementRequest, actor string) (*domain.Movement, error)

	// VoidMovement soft-deletes a movement and reverses its balance effect per the configured policy.
	// A movement that was already voided is returned unchanged with alreadyVoided set.
	VoidMovement(ctx context.Context, movementID, actor string, role domain.Role) (movement *domain.Movement, alreadyVoided bool, err error)
}

// MovementSvcFacade combines all movement-related service interfaces
type MovementSvcFacade interface {
	MovementReaderSvc
	MovementWriterSvc
}
