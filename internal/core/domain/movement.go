package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
)

// MovementKind is the ledger entry type.
type MovementKind string

const (
	KindSale              MovementKind = "SALE"
	KindExpense           MovementKind = "EXPENSE"
	KindWithdrawalPartial MovementKind = "WITHDRAWAL_PARTIAL"
	KindClosureFull       MovementKind = "CLOSURE_FULL"
)

// IsValid reports whether the kind is one of the known kinds.
func (k MovementKind) IsValid() bool {
	switch k {
	case KindSale, KindExpense, KindWithdrawalPartial, KindClosureFull:
		return true
	}
	return false
}

// IsCashOut reports whether the kind removes declared cash from the drawer.
func (k MovementKind) IsCashOut() bool {
	return k == KindWithdrawalPartial || k == KindClosureFull
}

// VoidInfo is the soft-delete audit trail of a movement. It is set at most once.
type VoidInfo struct {
	Voided   bool       `json:"voided"`
	VoidedAt *time.Time `json:"voidedAt,omitempty"`
	VoidedBy string     `json:"voidedBy,omitempty"`
}

// MovementDetail is the kind specific part of a movement: *Sale, *Expense or *Withdrawal.
type MovementDetail interface {
	kind() MovementKind
}

// Sale is goods sold to a customer, possibly on credit and possibly paid by transfer to a payee.
type Sale struct {
	GrossAmount Money
	Customer    string
	Payment     Payment
	Payee       string
	// PayeeSettled is what was actually deducted from the payee (after the zero floor).
	// It is filled by the store when the movement is applied.
	PayeeSettled Money
}

func (*Sale) kind() MovementKind { return KindSale }

// DebtDelta is the change the sale causes on the customer's debt balance.
func (s *Sale) DebtDelta() Money {
	return s.GrossAmount - s.Payment.Total()
}

// Expense is money paid out of the shop. Settled in cash unless Method says otherwise.
type Expense struct {
	Description string
	Amount      Money
	Method      PaymentMethod
}

func (*Expense) kind() MovementKind { return KindExpense }

// Withdrawal is cash taken out of the drawer, either partially or as the full closure.
type Withdrawal struct {
	DeclaredAmount Money
	Full           bool
}

func (w *Withdrawal) kind() MovementKind {
	if w.Full {
		return KindClosureFull
	}
	return KindWithdrawalPartial
}

// Movement is one ledger entry. Financial fields never change after it is stored,
// only Void can be set, once.
type Movement struct {
	MovementID        string
	Kind              MovementKind
	RecordedBy        string
	PhysicalCustodian string
	Note              string
	CreatedAt         time.Time
	DisplayDate       string
	DisplayTime       string
	Void              VoidInfo
	Detail            MovementDetail
}

// MovementHeader holds the fields shared by all kinds, supplied by the caller.
type MovementHeader struct {
	MovementID        string
	RecordedBy        string
	PhysicalCustodian string
	Note              string
	CreatedAt         time.Time
	DisplayDate       string
	DisplayTime       string
}

// SaleInput is the raw data for a sale before validation.
type SaleInput struct {
	GrossAmount Money
	Customer    string
	Method      PaymentMethod
	Cash        Money
	Card        Money
	Transfer    Money
	System      Money
	TotalPaid   *Money // Stated total; must match the breakdown when both are present
	Payee       string
}

// ExpenseInput is the raw data for an expense before validation.
type ExpenseInput struct {
	Description string
	Amount      Money
	Method      PaymentMethod
}

// WithdrawalInput is the raw data for a withdrawal or closure before validation.
type WithdrawalInput struct {
	DeclaredAmount *Money
	Full           bool
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, fmt.Sprintf(format, args...))
}

func newMovement(h MovementHeader, d MovementDetail) (Movement, error) {
	if h.RecordedBy == "" {
		return Movement{}, validationErr("recording user is required")
	}
	if h.CreatedAt.IsZero() {
		return Movement{}, validationErr("creation time is required")
	}
	custodian := h.PhysicalCustodian
	if custodian == "" {
		custodian = "-"
	}
	return Movement{
		MovementID:        h.MovementID,
		Kind:              d.kind(),
		RecordedBy:        h.RecordedBy,
		PhysicalCustodian: custodian,
		Note:              h.Note,
		CreatedAt:         h.CreatedAt,
		DisplayDate:       h.DisplayDate,
		DisplayTime:       h.DisplayTime,
		Detail:            d,
	}, nil
}

// NewSale validates in and builds a SALE movement.
func NewSale(h MovementHeader, in SaleInput) (Movement, error) {
	customer := NormalizeName(in.Customer)
	if customer == "" {
		return Movement{}, validationErr("sale requires a customer")
	}
	if in.GrossAmount.IsNegative() {
		return Movement{}, validationErr("gross amount must not be negative")
	}
	if !in.Method.IsValid() {
		return Movement{}, validationErr("unknown payment method %q", in.Method)
	}
	if in.Cash.IsNegative() || in.Card.IsNegative() || in.Transfer.IsNegative() || in.System.IsNegative() {
		return Movement{}, validationErr("payment amounts must not be negative")
	}
	if in.TotalPaid != nil && in.TotalPaid.IsNegative() {
		return Movement{}, validationErr("total paid must not be negative")
	}
	for _, m := range []Money{in.GrossAmount, in.Cash, in.Card, in.Transfer, in.System} {
		if !m.InRange() {
			return Movement{}, validationErr("amount %s exceeds %s", m, MaxAmount)
		}
	}
	if in.TotalPaid != nil && !in.TotalPaid.InRange() {
		return Movement{}, validationErr("total paid %s exceeds %s", *in.TotalPaid, MaxAmount)
	}

	payment, err := resolvePayment(in)
	if err != nil {
		return Movement{}, err
	}

	payee := NormalizeName(in.Payee)
	if payee != "" && payment.Transfer == 0 {
		return Movement{}, validationErr("payee %s given without a transfer amount", payee)
	}

	return newMovement(h, &Sale{
		GrossAmount: in.GrossAmount,
		Customer:    customer,
		Payment:     payment,
		Payee:       payee,
	})
}

func resolvePayment(in SaleInput) (Payment, error) {
	p := Payment{Method: in.Method, Cash: in.Cash, Card: in.Card, Transfer: in.Transfer, System: in.System}
	sum := p.Total()

	if in.Method == MethodMixed {
		if in.TotalPaid != nil && *in.TotalPaid != sum {
			return Payment{}, validationErr("mixed breakdown %s does not match total paid %s", sum, *in.TotalPaid)
		}
		return p, nil
	}

	if sum == 0 {
		if in.TotalPaid == nil {
			return p, nil
		}
		switch in.Method {
		case MethodCash:
			p.Cash = *in.TotalPaid
		case MethodCard:
			p.Card = *in.TotalPaid
		case MethodTransfer:
			p.Transfer = *in.TotalPaid
		case MethodSystem:
			p.System = *in.TotalPaid
		}
		return p, nil
	}

	if slot := p.Portions()[in.Method]; slot != sum {
		return Payment{}, validationErr("%s payment may only carry a %s amount; use MIXED for split payments", in.Method, in.Method)
	}
	if in.TotalPaid != nil && *in.TotalPaid != sum {
		return Payment{}, validationErr("breakdown %s does not match total paid %s", sum, *in.TotalPaid)
	}
	return p, nil
}

// NewExpense validates in and builds an EXPENSE movement.
func NewExpense(h MovementHeader, in ExpenseInput) (Movement, error) {
	if in.Description == "" {
		return Movement{}, validationErr("expense requires a description")
	}
	if in.Amount <= 0 {
		return Movement{}, validationErr("expense amount must be positive")
	}
	if !in.Amount.InRange() {
		return Movement{}, validationErr("expense amount %s exceeds %s", in.Amount, MaxAmount)
	}
	method := in.Method
	if method == "" {
		method = MethodCash
	}
	if !method.IsValid() || method == MethodMixed {
		return Movement{}, validationErr("expense method must be CASH, CARD, TRANSFER or SYSTEM")
	}
	return newMovement(h, &Expense{Description: in.Description, Amount: in.Amount, Method: method})
}

// NewWithdrawal validates in and builds a WITHDRAWAL_PARTIAL or CLOSURE_FULL movement.
func NewWithdrawal(h MovementHeader, in WithdrawalInput) (Movement, error) {
	if in.DeclaredAmount == nil {
		return Movement{}, validationErr("withdrawal requires a declared amount")
	}
	if in.DeclaredAmount.IsNegative() {
		return Movement{}, validationErr("declared amount must not be negative")
	}
	if !in.DeclaredAmount.InRange() {
		return Movement{}, validationErr("declared amount %s exceeds %s", *in.DeclaredAmount, MaxAmount)
	}
	return newMovement(h, &Withdrawal{DeclaredAmount: *in.DeclaredAmount, Full: in.Full})
}

// Sale returns the sale detail if the movement is a sale.
func (m *Movement) Sale() (*Sale, bool) {
	s, ok := m.Detail.(*Sale)
	return s, ok
}

// Expense returns the expense detail if the movement is an expense.
func (m *Movement) Expense() (*Expense, bool) {
	e, ok := m.Detail.(*Expense)
	return e, ok
}

// Withdrawal returns the withdrawal detail if the movement is a withdrawal or closure.
func (m *Movement) Withdrawal() (*Withdrawal, bool) {
	w, ok := m.Detail.(*Withdrawal)
	return w, ok
}

// AmountPaid is the money that changed hands: total paid for sales,
// the amount for expenses and the declared amount for withdrawals.
func (m *Movement) AmountPaid() Money {
	switch d := m.Detail.(type) {
	case *Sale:
		return d.Payment.Total()
	case *Expense:
		return d.Amount
	case *Withdrawal:
		return d.DeclaredAmount
	}
	return 0
}

// MarkVoided sets the void audit fields. It fails with ErrAlreadyVoided the second time.
func (m *Movement) MarkVoided(actor string, at time.Time) error {
	if m.Void.Voided {
		return apperrors.ErrAlreadyVoided
	}
	m.Void = VoidInfo{Voided: true, VoidedAt: &at, VoidedBy: actor}
	return nil
}
