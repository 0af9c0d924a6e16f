package services

import (
	"context"

	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/aromex/aromex_backend/internal/dto"
)

// CurrencySvcFacade exposes the currency catalog.
type CurrencySvcFacade interface {
	// CreateCurrency adds a currency; name/symbol must be unique and the legacy rate > 0.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// GetCurrencyByName retrieves a currency by its unique name.
	GetCurrencyByName(ctx context.Context, name string) (*domain.Currency, error)

	// ListCurrencies retrieves all catalog currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
