package dto

import (
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// ExportResponse is the full-state ledger backup.
type ExportResponse struct {
	OK        bool                          `json:"ok"`
	TakenAt   time.Time                     `json:"takenAt"`
	Customers []domain.Customer             `json:"customers"`
	Payees    []domain.Payee                `json:"payees"`
	Movements []domain.MovementView         `json:"movements"`
	History   []domain.CustomerHistoryEntry `json:"history"`
}
