package services

import (
	"context"

	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/aromex/aromex_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// RateSvcFacade resolves market exchange rates from stored direct rates.
type RateSvcFacade interface {
	// Resolve returns the authoritative market rate for from -> to: the direct rate
	// when stored, else the inverse of the reverse-direction rate, else
	// apperrors.ErrRateUnavailable. The legacy per-currency rate is never consulted.
	Resolve(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error)

	// DisplayRate returns the "1 X = Y Z" presentation, preferring the direction whose
	// numeric rate is >= 1 when both directions resolve.
	DisplayRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.DisplayRate, error)

	// SetDirectRate stores a manual direct rate for the pair.
	SetDirectRate(ctx context.Context, req dto.SetDirectRateRequest, creatorUserID string) (*domain.DirectExchangeRate, error)

	// ListDirectRates retrieves every stored direct rate.
	ListDirectRates(ctx context.Context) ([]domain.DirectExchangeRate, error)
}
