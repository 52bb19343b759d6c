package dto

import (
	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// ListCustomersParams drives GET /customers: a name fragment search, or the debtor
// ranking when Query is empty.
type ListCustomersParams struct {
	Query string `form:"q" binding:"max=120"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=300"`
}

// AdjustCustomerDebtRequest is a manual change to a customer's debt.
// Positive delta increases what the customer owes.
type AdjustCustomerDebtRequest struct {
	Name  string       `json:"name" binding:"required,max=120" example:"ANA"`
	Phone string       `json:"phone" binding:"max=40"`
	Delta domain.Money `json:"delta" swaggertype:"string" example:"-150.00"`
	Note  string       `json:"note" binding:"max=500"`
}

// CustomerResponse wraps a single customer.
type CustomerResponse struct {
	OK       bool            `json:"ok"`
	Customer domain.Customer `json:"customer"`
}

// ListCustomersResponse wraps a list of customers.
type ListCustomersResponse struct {
	OK        bool              `json:"ok"`
	Customers []domain.Customer `json:"customers"`
}

// CustomerHistoryResponse wraps a customer's balance history.
type CustomerHistoryResponse struct {
	OK       bool                          `json:"ok"`
	Customer string                        `json:"customer"`
	History  []domain.CustomerHistoryEntry `json:"history"`
}
