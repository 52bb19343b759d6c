package domain

import (
	"strings"
	"time"
)

// Customer is a shop customer that may carry a running debt ("fiado").
type Customer struct {
	Name          string    `json:"name"` // Unique, upper-cased
	Phone         string    `json:"phone"`
	DebtBalance   Money     `json:"debtBalance"` // Positive: the customer owes the shop
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// HistoryAction labels a change to a customer's debt balance.
type HistoryAction string

const (
	HistorySale       HistoryAction = "SALE"
	HistoryVoid       HistoryAction = "VOID"
	HistoryAdjustment HistoryAction = "ADJUSTMENT"
	HistoryOpening    HistoryAction = "OPENING"
)

// CustomerHistoryEntry records one change to a customer's debt balance.
type CustomerHistoryEntry struct {
	CustomerName string        `json:"customerName"`
	At           time.Time     `json:"at"`
	Delta        Money         `json:"delta"`
	BalanceAfter Money         `json:"balanceAfter"`
	Action       HistoryAction `json:"action"`
	MovementID   string        `json:"movementID,omitempty"`
	Actor        string        `json:"actor"`
	Note         string        `json:"note,omitempty"`
}

// NormalizeName returns the canonical identity form of a customer or payee name.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}
