package repositories

import (
	"context"

	"github.com/aromex/aromex_backend/internal/core/domain"
)

// CurrencyReader defines read operations for the currency catalog.
type CurrencyReader interface {
	// FindCurrencyByName retrieves a currency by its unique name.
	FindCurrencyByName(ctx context.Context, name string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies in the catalog.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for the currency catalog.
type CurrencyWriter interface {
	// SaveCurrency inserts a new currency. Name/symbol collisions map to ErrDuplicate.
	SaveCurrency(ctx context.Context, currency domain.Currency) error
}

// CurrencyRepositoryFacade combines all currency repository interfaces.
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
