package services

import "github.com/SscSPs/shop_ledger/internal/core/domain"

// LedgerRecorder receives ledger events for metrics.
type LedgerRecorder interface {
	MovementRecorded(kind domain.MovementKind)
	MovementVoided(kind domain.MovementKind)
}
