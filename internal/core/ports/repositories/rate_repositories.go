package repositories

import (
	"context"

	"github.com/aromex/aromex_backend/internal/core/domain"
)

// RateReader defines read operations for direct exchange rates.
type RateReader interface {
	// FindDirectRate retrieves the stored rate for the exact from -> to direction.
	// Returns apperrors.ErrNotFound when no edge exists in that direction.
	FindDirectRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.DirectExchangeRate, error)

	// ListDirectRates retrieves every stored direct rate.
	ListDirectRates(ctx context.Context) ([]domain.DirectExchangeRate, error)
}

// RateWriter defines write operations for direct exchange rates.
type RateWriter interface {
	// UpsertDirectRate inserts or replaces the rate for the (from, to) pair.
	UpsertDirectRate(ctx context.Context, rate domain.DirectExchangeRate) error
}

// RateRepositoryFacade combines all rate repository interfaces.
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
