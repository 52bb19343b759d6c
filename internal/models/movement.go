package models

import "time"

// Movement is a row of the movements table. Amounts are stored in minor units.
// Kind specific columns are NULL for the other kinds.
type Movement struct {
	MovementID        string     `db:"movement_id"`
	Kind              string     `db:"kind"`
	RecordedBy        string     `db:"recorded_by"`
	PhysicalCustodian string     `db:"physical_custodian"`
	Note              string     `db:"note"`
	CreatedAt         time.Time  `db:"created_at"`
	DisplayDate       string     `db:"display_date"`
	DisplayTime       string     `db:"display_time"`
	Voided            bool       `db:"voided"`
	VoidedAt          *time.Time `db:"voided_at"`
	VoidedBy          *string    `db:"voided_by"`

	// Sale
	GrossAmount    *int64  `db:"gross_amount"`
	Customer       *string `db:"customer_name"`
	PaymentMethod  *string `db:"payment_method"`
	CashAmount     int64   `db:"cash_amount"`
	CardAmount     int64   `db:"card_amount"`
	TransferAmount int64   `db:"transfer_amount"`
	SystemAmount   int64   `db:"system_amount"`
	Payee          *string `db:"payee_name"`
	PayeeSettled   int64   `db:"payee_settled"`

	// Expense
	Description   *string `db:"description"`
	ExpenseAmount *int64  `db:"expense_amount"`

	// Withdrawal / closure
	DeclaredAmount *int64 `db:"declared_amount"`
}
