package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/utils/accounting"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	movementRepo    portsrepo.MovementReader
	restrictedLimit int
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithRestrictedHistoryLimit sets how many items a restricted caller sees.
func WithRestrictedHistoryLimit(limit int) ReportingServiceOption {
	return func(s *reportingService) {
		if limit > 0 {
			s.restrictedLimit = limit
		}
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.MovementReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		movementRepo:    repo,
		restrictedLimit: accounting.DefaultRestrictedLimit,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// Reconciliation loads the window, aggregates it and strips the result down for role.
// A read failure aborts the report; partial totals are never returned.
func (s *reportingService) Reconciliation(ctx context.Context, window domain.Window, role domain.Role) (*domain.ReportView, error) {
	if window.From != nil && window.To != nil && window.From.After(*window.To) {
		return nil, apperrors.NewValidationError("report start is after its end")
	}

	movements, err := s.movementRepo.ListMovementsInRange(ctx, window)
	if err != nil {
		s.LogError(ctx, err, "Failed to load movements for reconciliation", windowAttrs(window)...)
		return nil, fmt.Errorf("failed to load movements for reconciliation: %w", err)
	}

	report := accounting.Reconcile(movements, window)
	view := accounting.Project(report, role, s.restrictedLimit)

	s.LogInfo(ctx, "Reconciliation report generated",
		append(windowAttrs(window),
			slog.String("profile", string(view.Profile)),
			slog.Int("movement_count", report.Totals.MovementCount),
			slog.Int("voided_count", report.Totals.VoidedCount))...)
	return &view, nil
}

func windowAttrs(w domain.Window) []any {
	attrs := make([]any, 0, 2)
	if w.From != nil {
		attrs = append(attrs, slog.String("from", w.From.Format(time.RFC3339)))
	}
	if w.To != nil {
		attrs = append(attrs, slog.String("to", w.To.Format(time.RFC3339)))
	}
	return attrs
}
