package accounting

import (
	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// DefaultRestrictedLimit is the number of items a restricted caller sees.
const DefaultRestrictedLimit = 10

// RedactedCounterpart replaces customer and payee names on transfer-settled sales
// shown to restricted callers.
const RedactedCounterpart = "TRANSFERENCIA"

// Project strips a report down to what role may see. Restricted callers get nil
// totals and only the most recent non-voided sales, at most limit of them.
func Project(r domain.Report, role domain.Role, limit int) domain.ReportView {
	profile := role.Profile()
	view := domain.ReportView{Profile: profile, Window: r.Window, Items: []domain.MovementView{}}

	if profile == domain.ProfileFull {
		totals := r.Totals
		view.Totals = &totals
		for _, m := range r.Items {
			view.Items = append(view.Items, ProjectMovement(m, profile))
		}
		return view
	}

	if limit <= 0 {
		limit = DefaultRestrictedLimit
	}
	for _, m := range r.Items {
		if len(view.Items) >= limit {
			break
		}
		if m.Void.Voided || m.Kind != domain.KindSale {
			continue
		}
		view.Items = append(view.Items, ProjectMovement(m, profile))
	}
	return view
}

// ProjectMovement renders a single movement for profile.
func ProjectMovement(m domain.Movement, profile domain.Profile) domain.MovementView {
	v := domain.MovementView{
		MovementID:  m.MovementID,
		Kind:        m.Kind,
		CreatedAt:   m.CreatedAt,
		DisplayDate: m.DisplayDate,
		DisplayTime: m.DisplayTime,
		TotalPaid:   m.AmountPaid(),
	}

	if profile != domain.ProfileFull {
		if sale, ok := m.Sale(); ok {
			v.Customer = sale.Customer
			v.Payee = sale.Payee
			if sale.Payment.Transfer > 0 {
				v.Customer = RedactedCounterpart
				if v.Payee != "" {
					v.Payee = RedactedCounterpart
				}
			}
		}
		return v
	}

	v.RecordedBy = m.RecordedBy
	v.PhysicalCustodian = m.PhysicalCustodian
	v.Note = m.Note
	void := m.Void
	v.Void = &void

	switch d := m.Detail.(type) {
	case *domain.Sale:
		gross, payment, settled := d.GrossAmount, d.Payment, d.PayeeSettled
		v.Customer = d.Customer
		v.Payee = d.Payee
		v.GrossAmount = &gross
		v.Payment = &payment
		if d.Payee != "" {
			v.PayeeSettled = &settled
		}
	case *domain.Expense:
		method := d.Method
		v.Description = d.Description
		v.ExpenseMethod = &method
	case *domain.Withdrawal:
		declared := d.DeclaredAmount
		v.DeclaredAmount = &declared
	}
	return v
}

// ProjectPayees renders payees for role. Restricted callers only see names and aliases.
func ProjectPayees(payees []domain.Payee, role domain.Role) []domain.PayeeView {
	out := make([]domain.PayeeView, 0, len(payees))
	full := role.IsFull()
	for _, p := range payees {
		v := domain.PayeeView{Name: p.Name, Alias: p.Alias}
		if full {
			owed := p.AmountOwed
			over := p.OverCap()
			v.AmountOwed = &owed
			v.WarningCap = p.WarningCap
			v.OverCap = &over
		}
		out = append(out, v)
	}
	return out
}
