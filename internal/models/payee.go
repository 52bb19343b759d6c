package models

import "time"

// Payee is a row of the payees table.
type Payee struct {
	Name          string    `db:"name"`
	Alias         string    `db:"alias"`
	AmountOwed    int64     `db:"amount_owed"`
	WarningCap    *int64    `db:"warning_cap"`
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
