package domain

import "time"

// Payee is a third party the shop owes money to, paid down by transfer-settled sales.
type Payee struct {
	Name          string    `json:"name"` // Unique, upper-cased
	Alias         string    `json:"alias"`
	AmountOwed    Money     `json:"amountOwed"` // Never negative
	WarningCap    *Money    `json:"warningCap,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// OverCap reports whether the owed amount reached the configured warning cap.
func (p Payee) OverCap() bool {
	return p.WarningCap != nil && p.AmountOwed >= *p.WarningCap
}
