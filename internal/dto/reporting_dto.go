package dto

import (
	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// ReconciliationParams are the optional report bounds, RFC3339 or YYYY-MM-DD.
// A bare date as "to" covers the whole day.
type ReconciliationParams struct {
	From string `form:"from" example:"2024-05-01"`
	To   string `form:"to" example:"2024-05-31"`
}

// ReconciliationResponse is the role-filtered reconciliation report.
// Totals is null for restricted callers.
type ReconciliationResponse struct {
	OK bool `json:"ok"`
	domain.ReportView
}
