package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aromex/aromex_backend/internal/apperrors"
	"github.com/aromex/aromex_backend/internal/core/domain"
	portsrepo "github.com/aromex/aromex_backend/internal/core/ports/repositories"
	portssvc "github.com/aromex/aromex_backend/internal/core/ports/services"
	"github.com/aromex/aromex_backend/internal/dto"
	"github.com/aromex/aromex_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// currencyService maintains the currency catalog.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency catalog service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency adds a currency to the catalog. Name and symbol must be unique; the
// legacy fallback rate must be positive.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyID:   uuid.NewString(),
		Name:         req.Name,
		Symbol:       req.Symbol,
		ExchangeRate: req.ExchangeRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		// Unique violations on name/symbol surface as ErrDuplicate from the repository.
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	logger.Info("Currency created", "currency_name", currency.Name)
	return &currency, nil
}

// GetCurrencyByName retrieves a currency by its unique name.
func (s *currencyService) GetCurrencyByName(ctx context.Context, name string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency %q: %w", name, err)
	}
	return currency, nil
}

// ListCurrencies retrieves all catalog currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}
