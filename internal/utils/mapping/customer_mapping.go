package mapping

import (
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/models"
)

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		Name:          m.Name,
		Phone:         deref(m.Phone),
		DebtBalance:   domain.Money(m.DebtBalance),
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

// ToDomainCustomerHistory converts a model CustomerHistory to a domain CustomerHistoryEntry
func ToDomainCustomerHistory(m models.CustomerHistory) domain.CustomerHistoryEntry {
	return domain.CustomerHistoryEntry{
		CustomerName: m.CustomerName,
		At:           m.At,
		Delta:        domain.Money(m.Delta),
		BalanceAfter: domain.Money(m.BalanceAfter),
		Action:       domain.HistoryAction(m.Action),
		MovementID:   deref(m.MovementID),
		Actor:        m.Actor,
		Note:         deref(m.Note),
	}
}

// ToModelCustomerHistory converts a domain CustomerHistoryEntry to a model CustomerHistory
func ToModelCustomerHistory(d domain.CustomerHistoryEntry) models.CustomerHistory {
	return models.CustomerHistory{
		CustomerName: d.CustomerName,
		At:           d.At,
		Delta:        int64(d.Delta),
		BalanceAfter: int64(d.BalanceAfter),
		Action:       string(d.Action),
		MovementID:   strPtr(d.MovementID),
		Actor:        d.Actor,
		Note:         strPtr(d.Note),
	}
}
