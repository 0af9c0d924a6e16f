package dto

import (
	"time"

	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetDirectRateRequest defines the data needed to store a direct exchange rate.
// This is also the path used when a user supplies a manual rate after an exchange was
// refused with a rate-unavailable error.
type SetDirectRateRequest struct {
	FromCurrency string          `json:"fromCurrency" binding:"required"`
	ToCurrency   string          `json:"toCurrency" binding:"required"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
}

// DirectRateResponse defines the data returned for a stored direct rate.
type DirectRateResponse struct {
	RateID       string          `json:"rateID"`
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// DisplayRateResponse is the "1 X = Y Z" presentation of a resolved rate.
type DisplayRateResponse struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	Inverted     bool            `json:"inverted"`
}

// ToDirectRateResponse converts a domain.DirectExchangeRate to its DTO.
func ToDirectRateResponse(r *domain.DirectExchangeRate) DirectRateResponse {
	return DirectRateResponse{
		RateID:       r.RateID,
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		Rate:         r.Rate,
		UpdatedAt:    r.LastUpdatedAt,
	}
}

// ToDisplayRateResponse converts a domain.DisplayRate to its DTO.
func ToDisplayRateResponse(r domain.DisplayRate) DisplayRateResponse {
	return DisplayRateResponse{
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		Rate:         r.Rate,
		Inverted:     r.Inverted,
	}
}
