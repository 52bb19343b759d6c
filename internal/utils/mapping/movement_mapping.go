package mapping

import (
	"fmt"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/models"
)

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func int64Ptr(m domain.Money) *int64 {
	v := int64(m)
	return &v
}

func moneyOf(v *int64) domain.Money {
	if v == nil {
		return 0
	}
	return domain.Money(*v)
}

// ToModelMovement converts a domain Movement to a model Movement
func ToModelMovement(d domain.Movement) models.Movement {
	m := models.Movement{
		MovementID:        d.MovementID,
		Kind:              string(d.Kind),
		RecordedBy:        d.RecordedBy,
		PhysicalCustodian: d.PhysicalCustodian,
		Note:              d.Note,
		CreatedAt:         d.CreatedAt,
		DisplayDate:       d.DisplayDate,
		DisplayTime:       d.DisplayTime,
		Voided:            d.Void.Voided,
		VoidedAt:          d.Void.VoidedAt,
		VoidedBy:          strPtr(d.Void.VoidedBy),
	}

	switch detail := d.Detail.(type) {
	case *domain.Sale:
		method := string(detail.Payment.Method)
		m.GrossAmount = int64Ptr(detail.GrossAmount)
		m.Customer = strPtr(detail.Customer)
		m.PaymentMethod = &method
		m.CashAmount = int64(detail.Payment.Cash)
		m.CardAmount = int64(detail.Payment.Card)
		m.TransferAmount = int64(detail.Payment.Transfer)
		m.SystemAmount = int64(detail.Payment.System)
		m.Payee = strPtr(detail.Payee)
		m.PayeeSettled = int64(detail.PayeeSettled)
	case *domain.Expense:
		method := string(detail.Method)
		m.Description = strPtr(detail.Description)
		m.ExpenseAmount = int64Ptr(detail.Amount)
		m.PaymentMethod = &method
	case *domain.Withdrawal:
		m.DeclaredAmount = int64Ptr(detail.DeclaredAmount)
	}
	return m
}

// ToDomainMovement converts a model Movement to a domain Movement
func ToDomainMovement(m models.Movement) (domain.Movement, error) {
	d := domain.Movement{
		MovementID:        m.MovementID,
		Kind:              domain.MovementKind(m.Kind),
		RecordedBy:        m.RecordedBy,
		PhysicalCustodian: m.PhysicalCustodian,
		Note:              m.Note,
		CreatedAt:         m.CreatedAt,
		DisplayDate:       m.DisplayDate,
		DisplayTime:       m.DisplayTime,
		Void: domain.VoidInfo{
			Voided:   m.Voided,
			VoidedAt: m.VoidedAt,
			VoidedBy: deref(m.VoidedBy),
		},
	}

	switch d.Kind {
	case domain.KindSale:
		d.Detail = &domain.Sale{
			GrossAmount: moneyOf(m.GrossAmount),
			Customer:    deref(m.Customer),
			Payment: domain.Payment{
				Method:   domain.PaymentMethod(deref(m.PaymentMethod)),
				Cash:     domain.Money(m.CashAmount),
				Card:     domain.Money(m.CardAmount),
				Transfer: domain.Money(m.TransferAmount),
				System:   domain.Money(m.SystemAmount),
			},
			Payee:        deref(m.Payee),
			PayeeSettled: domain.Money(m.PayeeSettled),
		}
	case domain.KindExpense:
		d.Detail = &domain.Expense{
			Description: deref(m.Description),
			Amount:      moneyOf(m.ExpenseAmount),
			Method:      domain.PaymentMethod(deref(m.PaymentMethod)),
		}
	case domain.KindWithdrawalPartial, domain.KindClosureFull:
		d.Detail = &domain.Withdrawal{
			DeclaredAmount: moneyOf(m.DeclaredAmount),
			Full:           d.Kind == domain.KindClosureFull,
		}
	default:
		return domain.Movement{}, fmt.Errorf("movement %s has unknown kind %q", m.MovementID, m.Kind)
	}
	return d, nil
}

// ToDomainMovementSlice converts a slice of model Movements to domain Movements
func ToDomainMovementSlice(ms []models.Movement) ([]domain.Movement, error) {
	out := make([]domain.Movement, 0, len(ms))
	for _, m := range ms {
		d, err := ToDomainMovement(m)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
