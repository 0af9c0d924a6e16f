package mapping

import (
	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/aromex/aromex_backend/internal/models"
)

// ToModelExchangeRate converts a domain direct rate to its database model.
func ToModelExchangeRate(d domain.DirectExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		RateID:       d.RateID,
		FromCurrency: d.FromCurrency,
		ToCurrency:   d.ToCurrency,
		Rate:         d.Rate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a database rate model to its domain representation.
func ToDomainExchangeRate(m models.ExchangeRate) domain.DirectExchangeRate {
	return domain.DirectExchangeRate{
		RateID:       m.RateID,
		FromCurrency: m.FromCurrency,
		ToCurrency:   m.ToCurrency,
		Rate:         m.Rate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
