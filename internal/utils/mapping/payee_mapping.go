package mapping

import (
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/models"
)

// ToDomainPayee converts a model Payee to a domain Payee
func ToDomainPayee(m models.Payee) domain.Payee {
	p := domain.Payee{
		Name:          m.Name,
		Alias:         m.Alias,
		AmountOwed:    domain.Money(m.AmountOwed),
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
	if m.WarningCap != nil {
		c := domain.Money(*m.WarningCap)
		p.WarningCap = &c
	}
	return p
}

// ToModelWarningCap converts an optional cap to its column value.
func ToModelWarningCap(c *domain.Money) *int64 {
	if c == nil {
		return nil
	}
	return int64Ptr(*c)
}
