package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/utils/accounting"
)

const (
	defaultMovementPageSize = 50
	displayDateLayout       = "02/01/2006"
	displayTimeLayout       = "15:04:05"
)

// movementService records movements and voids them, keeping customer and payee balances in step.
type movementService struct {
	BaseService
	movementRepo portsrepo.MovementRepositoryFacade
	voidPolicy   domain.VoidPolicy
	location     *time.Location
	recorder     portssvc.LedgerRecorder
	newID        func() string
}

// MovementServiceOption is a functional option for configuring the movement service
type MovementServiceOption func(*movementService)

// WithVoidPolicy sets how voids reverse payee balances.
func WithVoidPolicy(policy domain.VoidPolicy) MovementServiceOption {
	return func(s *movementService) {
		s.voidPolicy = policy
	}
}

// WithShopLocation sets the timezone used to derive display date and time.
func WithShopLocation(loc *time.Location) MovementServiceOption {
	return func(s *movementService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithLedgerRecorder sets the metrics sink.
func WithLedgerRecorder(recorder portssvc.LedgerRecorder) MovementServiceOption {
	return func(s *movementService) {
		s.recorder = recorder
	}
}

// WithMovementClock overrides the clock and id generator, for tests.
func WithMovementClock(now func() time.Time, newID func() string) MovementServiceOption {
	return func(s *movementService) {
		if now != nil {
			s.Now = now
		}
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewMovementService creates a new movement service with the provided options
func NewMovementService(repo portsrepo.MovementRepositoryFacade, options ...MovementServiceOption) portssvc.MovementSvcFacade {
	svc := &movementService{
		movementRepo: repo,
		voidPolicy:   domain.VoidPolicyFull,
		location:     time.UTC,
		newID:        uuid.NewString,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure movementService implements the MovementSvcFacade interface
var _ portssvc.MovementSvcFacade = (*movementService)(nil)

// SubmitMovement builds the movement from req and stores it together with its balance effect.
func (s *movementService) SubmitMovement(ctx context.Context, req dto.CreateMovementRequest, actor string) (*domain.Movement, error) {
	createdAt := s.now()
	header := domain.MovementHeader{
		MovementID:        s.newID(),
		RecordedBy:        actor,
		PhysicalCustodian: req.PhysicalCustodian,
		Note:              req.Note,
		CreatedAt:         createdAt,
		DisplayDate:       req.DisplayDate,
		DisplayTime:       req.DisplayTime,
	}
	local := createdAt.In(s.location)
	if header.DisplayDate == "" {
		header.DisplayDate = local.Format(displayDateLayout)
	}
	if header.DisplayTime == "" {
		header.DisplayTime = local.Format(displayTimeLayout)
	}

	movement, err := buildMovement(header, req)
	if err != nil {
		s.LogDebug(ctx, "Rejected movement", slog.String("kind", string(req.Kind)), slog.String("error", err.Error()))
		return nil, err
	}

	effect := accounting.EffectOf(movement)
	effect.CustomerPhone = req.CustomerPhone

	saved, err := s.movementRepo.SaveMovement(ctx, movement, effect)
	if err != nil {
		s.LogError(ctx, err, "Failed to save movement",
			slog.String("movement_id", movement.MovementID),
			slog.String("kind", string(movement.Kind)))
		return nil, fmt.Errorf("failed to save movement: %w", err)
	}

	if s.recorder != nil {
		s.recorder.MovementRecorded(saved.Kind)
	}
	s.LogInfo(ctx, "Movement recorded",
		slog.String("movement_id", saved.MovementID),
		slog.String("kind", string(saved.Kind)),
		slog.String("debt_delta", effect.DebtDelta.String()))
	return saved, nil
}

func buildMovement(header domain.MovementHeader, req dto.CreateMovementRequest) (domain.Movement, error) {
	switch req.Kind {
	case domain.KindSale:
		method := req.PaymentMethod
		if method == "" {
			method = domain.MethodCash
		}
		return domain.NewSale(header, domain.SaleInput{
			GrossAmount: req.GrossAmount,
			Customer:    req.Customer,
			Method:      method,
			Cash:        req.Cash,
			Card:        req.Card,
			Transfer:    req.Transfer,
			System:      req.System,
			TotalPaid:   req.TotalPaid,
			Payee:       req.Payee,
		})
	case domain.KindExpense:
		return domain.NewExpense(header, domain.ExpenseInput{
			Description: req.Description,
			Amount:      req.Amount,
			Method:      req.PaymentMethod,
		})
	case domain.KindWithdrawalPartial, domain.KindClosureFull:
		return domain.NewWithdrawal(header, domain.WithdrawalInput{
			DeclaredAmount: req.DeclaredAmount,
			Full:           req.Kind == domain.KindClosureFull,
		})
	}
	return domain.Movement{}, apperrors.NewValidationError(fmt.Sprintf("unknown movement kind %q", req.Kind))
}

// VoidMovement soft-deletes a movement and applies its reversal. Voiding twice is a no-op.
func (s *movementService) VoidMovement(ctx context.Context, movementID, actor string, role domain.Role) (*domain.Movement, bool, error) {
	if err := s.RequireFullAccess(ctx, role, "void movement"); err != nil {
		return nil, false, err
	}

	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load movement %s: %w", movementID, err)
	}
	if movement.Void.Voided {
		s.LogInfo(ctx, "Movement already voided", slog.String("movement_id", movementID))
		return movement, true, nil
	}

	reversal := accounting.ReversalOf(*movement, actor, s.voidPolicy)
	voided, err := s.movementRepo.VoidMovement(ctx, movementID, actor, s.now(), reversal)
	if errors.Is(err, apperrors.ErrAlreadyVoided) {
		// Lost a race with a concurrent void; the other request applied the reversal.
		current, findErr := s.movementRepo.FindMovementByID(ctx, movementID)
		if findErr != nil {
			return nil, false, fmt.Errorf("failed to reload movement %s: %w", movementID, findErr)
		}
		return current, true, nil
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to void movement", slog.String("movement_id", movementID))
		return nil, false, fmt.Errorf("failed to void movement: %w", err)
	}

	if s.recorder != nil {
		s.recorder.MovementVoided(voided.Kind)
	}
	s.LogInfo(ctx, "Movement voided",
		slog.String("movement_id", movementID),
		slog.String("kind", string(voided.Kind)),
		slog.String("policy", string(s.voidPolicy)))
	return voided, false, nil
}

// GetMovement returns a single movement.
func (s *movementService) GetMovement(ctx context.Context, movementID string, role domain.Role) (*domain.Movement, error) {
	if err := s.RequireFullAccess(ctx, role, "view movement"); err != nil {
		return nil, err
	}
	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, fmt.Errorf("failed to load movement %s: %w", movementID, err)
	}
	return movement, nil
}

// ListMovements returns a page of movement history, newest first.
func (s *movementService) ListMovements(ctx context.Context, params dto.ListMovementsParams, role domain.Role) ([]domain.Movement, *string, error) {
	if err := s.RequireFullAccess(ctx, role, "list movements"); err != nil {
		return nil, nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultMovementPageSize
	}
	movements, next, err := s.movementRepo.ListMovements(ctx, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements")
		return nil, nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, next, nil
}
