package dto

import (
	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// UpsertPayeeRequest creates a payee or adds TopUp to what the shop owes it.
type UpsertPayeeRequest struct {
	Name       string        `json:"name" binding:"required,max=120" example:"DISTRIBUIDOR X"`
	Alias      string        `json:"alias" binding:"max=120"`
	TopUp      domain.Money  `json:"topUp" binding:"money_nonneg" swaggertype:"string" example:"5000.00"`
	WarningCap *domain.Money `json:"warningCap" swaggertype:"string"`
}

// PayeeResponse wraps a single payee.
type PayeeResponse struct {
	OK    bool         `json:"ok"`
	Payee domain.Payee `json:"payee"`
}

// ListPayeesResponse wraps the role-projected payee list.
type ListPayeesResponse struct {
	OK     bool               `json:"ok"`
	Payees []domain.PayeeView `json:"payees"`
}
