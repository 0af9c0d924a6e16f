package dto

import (
	"time"

	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest defines the data needed to add a currency to the catalog.
// ExchangeRate is the legacy units-per-base fallback rate; direct rates are managed
// separately.
type CreateCurrencyRequest struct {
	Name         string          `json:"name" binding:"required"`
	Symbol       string          `json:"symbol" binding:"required"`
	ExchangeRate decimal.Decimal `json:"exchangeRate" binding:"required"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID   string          `json:"currencyID"`
	Name         string          `json:"name"`
	Symbol       string          `json:"symbol"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID:   c.CurrencyID,
		Name:         c.Name,
		Symbol:       c.Symbol,
		ExchangeRate: c.ExchangeRate,
		CreatedAt:    c.CreatedAt,
	}
}

// ToListCurrencyResponse converts a slice of domain currencies to DTOs.
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return res
}
