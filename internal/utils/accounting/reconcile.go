package accounting

import (
	"sort"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// NewTotals returns zeroed totals with every single settlement method present.
func NewTotals() domain.Totals {
	return domain.Totals{
		ByMethod: map[domain.PaymentMethod]domain.Money{
			domain.MethodCash:     0,
			domain.MethodCard:     0,
			domain.MethodTransfer: 0,
			domain.MethodSystem:   0,
		},
	}
}

// Accumulate adds one movement to t. Voided movements only bump VoidedCount.
// Derived values (NetProfit, CashDiscrepancy) are refreshed on every call.
func Accumulate(t *domain.Totals, m domain.Movement) {
	if m.Void.Voided {
		t.VoidedCount++
		return
	}
	t.MovementCount++

	switch d := m.Detail.(type) {
	case *domain.Sale:
		t.TotalSales += d.GrossAmount
		t.TheoreticalCash += d.Payment.Cash
		for method, amount := range d.Payment.Portions() {
			t.ByMethod[method] += amount
		}
	case *domain.Expense:
		t.TotalExpenses += d.Amount
		if d.Method == domain.MethodCash {
			t.TheoreticalCash -= d.Amount
		}
	case *domain.Withdrawal:
		t.TotalDeclaredWithdrawn += d.DeclaredAmount
		t.TheoreticalCash -= d.DeclaredAmount
	}

	t.NetProfit = t.TotalSales - t.TotalExpenses
	t.CashDiscrepancy = t.TotalDeclaredWithdrawn - t.TheoreticalCash
}

// Reconcile aggregates the movements that fall inside window in a single pass.
// Items are returned newest first and include voided movements.
func Reconcile(movements []domain.Movement, window domain.Window) domain.Report {
	report := domain.Report{Window: window, Totals: NewTotals(), Items: make([]domain.Movement, 0, len(movements))}
	for _, m := range movements {
		if !window.Contains(m.CreatedAt) {
			continue
		}
		Accumulate(&report.Totals, m)
		report.Items = append(report.Items, m)
	}
	SortNewestFirst(report.Items)
	return report
}

// SortNewestFirst orders movements by createdAt descending, then id descending.
func SortNewestFirst(ms []domain.Movement) {
	sort.SliceStable(ms, func(i, j int) bool {
		if !ms[i].CreatedAt.Equal(ms[j].CreatedAt) {
			return ms[i].CreatedAt.After(ms[j].CreatedAt)
		}
		return ms[i].MovementID > ms[j].MovementID
	})
}
