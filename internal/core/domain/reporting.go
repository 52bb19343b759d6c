package domain

import "time"

// Window bounds a report by createdAt. Both ends are inclusive and optional.
type Window struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if w.From != nil && t.Before(*w.From) {
		return false
	}
	if w.To != nil && t.After(*w.To) {
		return false
	}
	return true
}

// Totals are the aggregates of a reconciliation over non-voided movements.
type Totals struct {
	TotalSales             Money                   `json:"totalSales"`
	TotalExpenses          Money                   `json:"totalExpenses"`
	TotalDeclaredWithdrawn Money                   `json:"totalDeclaredWithdrawn"`
	TheoreticalCash        Money                   `json:"theoreticalCash"`
	NetProfit              Money                   `json:"netProfit"`
	CashDiscrepancy        Money                   `json:"cashDiscrepancy"`
	ByMethod               map[PaymentMethod]Money `json:"byMethod"`
	MovementCount          int                     `json:"movementCount"`
	VoidedCount            int                     `json:"voidedCount"`
}

// Add sums two disjoint reconciliations. Derived values are recomputed.
func (t Totals) Add(o Totals) Totals {
	out := Totals{
		TotalSales:             t.TotalSales + o.TotalSales,
		TotalExpenses:          t.TotalExpenses + o.TotalExpenses,
		TotalDeclaredWithdrawn: t.TotalDeclaredWithdrawn + o.TotalDeclaredWithdrawn,
		TheoreticalCash:        t.TheoreticalCash + o.TheoreticalCash,
		ByMethod:               make(map[PaymentMethod]Money, len(t.ByMethod)),
		MovementCount:          t.MovementCount + o.MovementCount,
		VoidedCount:            t.VoidedCount + o.VoidedCount,
	}
	for k, v := range t.ByMethod {
		out.ByMethod[k] += v
	}
	for k, v := range o.ByMethod {
		out.ByMethod[k] += v
	}
	out.NetProfit = out.TotalSales - out.TotalExpenses
	out.CashDiscrepancy = out.TotalDeclaredWithdrawn - out.TheoreticalCash
	return out
}

// Report is the unfiltered reconciliation result.
type Report struct {
	Window Window
	Totals Totals
	Items  []Movement // Newest first, voided included
}

// MovementView is a movement as shown to a caller. Fields a profile may not see are nil or empty.
type MovementView struct {
	MovementID        string         `json:"movementID"`
	Kind              MovementKind   `json:"kind"`
	CreatedAt         time.Time      `json:"createdAt"`
	DisplayDate       string         `json:"displayDate,omitempty"`
	DisplayTime       string         `json:"displayTime,omitempty"`
	RecordedBy        string         `json:"recordedBy,omitempty"`
	PhysicalCustodian string         `json:"physicalCustodian,omitempty"`
	Note              string         `json:"note,omitempty"`
	Customer          string         `json:"customer,omitempty"`
	Payee             string         `json:"payee,omitempty"`
	Description       string         `json:"description,omitempty"`
	TotalPaid         Money          `json:"totalPaid"`
	GrossAmount       *Money         `json:"grossAmount,omitempty"`
	Payment           *Payment       `json:"payment,omitempty"`
	ExpenseMethod     *PaymentMethod `json:"expenseMethod,omitempty"`
	DeclaredAmount    *Money         `json:"declaredAmount,omitempty"`
	PayeeSettled      *Money         `json:"payeeSettled,omitempty"`
	Void              *VoidInfo      `json:"void,omitempty"`
}

// ReportView is a Report projected for one profile. Totals is nil for restricted callers.
type ReportView struct {
	Profile Profile        `json:"profile"`
	Window  Window         `json:"window"`
	Totals  *Totals        `json:"totals"`
	Items   []MovementView `json:"items"`
}

// PayeeView is a payee as shown to a caller.
type PayeeView struct {
	Name       string `json:"name"`
	Alias      string `json:"alias"`
	AmountOwed *Money `json:"amountOwed,omitempty"`
	WarningCap *Money `json:"warningCap,omitempty"`
	OverCap    *bool  `json:"overCap,omitempty"`
}

// Snapshot is the full ledger state read in one consistent view.
type Snapshot struct {
	TakenAt   time.Time
	Customers []Customer
	Payees    []Payee
	Movements []Movement
	History   []CustomerHistoryEntry
}
