package dto

import (
	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// CreateMovementRequest is the payload of POST /movements. Which fields are required
// depends on kind; the domain constructors enforce that.
type CreateMovementRequest struct {
	Kind domain.MovementKind `json:"kind" binding:"required,movement_kind" example:"SALE"`

	// Sale
	GrossAmount   domain.Money         `json:"grossAmount" binding:"money_nonneg" swaggertype:"string" example:"1000.00"`
	Customer      string               `json:"customer" binding:"max=120" example:"ANA"`
	CustomerPhone string               `json:"customerPhone" binding:"max=40"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,payment_method" example:"CASH"`
	Cash          domain.Money         `json:"cash" binding:"money_nonneg" swaggertype:"string"`
	Card          domain.Money         `json:"card" binding:"money_nonneg" swaggertype:"string"`
	Transfer      domain.Money         `json:"transfer" binding:"money_nonneg" swaggertype:"string"`
	System        domain.Money         `json:"system" binding:"money_nonneg" swaggertype:"string"`
	TotalPaid     *domain.Money        `json:"totalPaid" swaggertype:"string" example:"600.00"`
	Payee         string               `json:"payee" binding:"max=120"`

	// Expense
	Description string       `json:"description" binding:"max=255"`
	Amount      domain.Money `json:"amount" binding:"money_nonneg" swaggertype:"string"`

	// Withdrawal / closure
	DeclaredAmount *domain.Money `json:"declaredAmount" swaggertype:"string"`

	PhysicalCustodian string `json:"physicalCustodian" binding:"max=120"`
	Note              string `json:"note" binding:"max=500"`
	DisplayDate       string `json:"displayDate" binding:"max=20"`
	DisplayTime       string `json:"displayTime" binding:"max=20"`
}

// ListMovementsParams defines query parameters for listing movements
type ListMovementsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=300"`
	NextToken *string `form:"nextToken"`
}

// MovementResponse wraps a single movement.
type MovementResponse struct {
	OK       bool                `json:"ok"`
	Movement domain.MovementView `json:"movement"`
}

// VoidMovementResponse is returned by the void endpoint. AlreadyVoided is true when the
// movement had been voided before this call and nothing changed.
type VoidMovementResponse struct {
	OK            bool                `json:"ok"`
	AlreadyVoided bool                `json:"alreadyVoided"`
	Movement      domain.MovementView `json:"movement"`
}

// ListMovementsResponse is a page of movement history.
type ListMovementsResponse struct {
	OK        bool                  `json:"ok"`
	Movements []domain.MovementView `json:"movements"`
	NextToken *string               `json:"nextToken,omitempty"`
}
