package mapping

import (
	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/aromex/aromex_backend/internal/models"
)

// ToModelCurrency converts a domain currency to its database model.
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyID:   d.CurrencyID,
		Name:         d.Name,
		Symbol:       d.Symbol,
		ExchangeRate: d.ExchangeRate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a database currency model to its domain representation.
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyID:   m.CurrencyID,
		Name:         m.Name,
		Symbol:       m.Symbol,
		ExchangeRate: m.ExchangeRate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
