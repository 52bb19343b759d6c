package models

import "time"

// Customer is a row of the customers table.
type Customer struct {
	Name          string    `db:"name"`
	Phone         *string   `db:"phone"`
	DebtBalance   int64     `db:"debt_balance"`
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}

// CustomerHistory is a row of the customer_history table.
type CustomerHistory struct {
	HistoryID    int64     `db:"history_id"`
	CustomerName string    `db:"customer_name"`
	At           time.Time `db:"at"`
	Delta        int64     `db:"delta"`
	BalanceAfter int64     `db:"balance_after"`
	Action       string    `db:"action"`
	MovementID   *string   `db:"movement_id"`
	Actor        string    `db:"actor"`
	Note         *string   `db:"note"`
}
