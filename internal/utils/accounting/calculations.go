package accounting

import (
	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// EffectOf returns the balance effect of applying m.
// Only sales touch balances; expenses and withdrawals are reconciliation-only.
func EffectOf(m domain.Movement) domain.BalanceEffect {
	eff := domain.BalanceEffect{MovementID: m.MovementID, Actor: m.RecordedBy, Action: domain.HistorySale}
	sale, ok := m.Sale()
	if !ok {
		return eff
	}
	eff.CustomerName = sale.Customer
	eff.DebtDelta = sale.DebtDelta()
	if sale.Payee != "" && sale.Payment.Transfer > 0 {
		eff.PayeeName = sale.Payee
		eff.PayeeDelta = -sale.Payment.Transfer
	}
	return eff
}

// ReversalOf returns the balance effect that undoes a stored movement on void.
// The payee is credited back with exactly what was settled, so apply followed by a
// full void restores the pre-apply balance even when the zero floor truncated the payment.
// With VoidPolicyForensic the payee balance is left untouched.
func ReversalOf(m domain.Movement, actor string, policy domain.VoidPolicy) domain.BalanceEffect {
	eff := domain.BalanceEffect{MovementID: m.MovementID, Actor: actor, Action: domain.HistoryVoid}
	sale, ok := m.Sale()
	if !ok {
		return eff
	}
	eff.CustomerName = sale.Customer
	eff.DebtDelta = -sale.DebtDelta()
	if policy != domain.VoidPolicyForensic && sale.Payee != "" && sale.PayeeSettled > 0 {
		eff.PayeeName = sale.Payee
		eff.PayeeDelta = sale.PayeeSettled
	}
	return eff
}

// ApplyPayeeDelta adds delta to owed, saturating at zero. It returns the new balance
// and the delta that was actually applied.
func ApplyPayeeDelta(owed, delta domain.Money) (newOwed, applied domain.Money) {
	newOwed = domain.MaxMoney(0, owed+delta)
	return newOwed, newOwed - owed
}
