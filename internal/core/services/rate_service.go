package services

import (
	"context"
	"errors"
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

var one = decimal.NewFromInt(1)

// rateService resolves market rates from the stored direct rate edges.
type rateService struct {
	rateRepo    portsrepo.RateRepositoryFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewRateService creates a new rate resolution service.
func NewRateService(rateRepo portsrepo.RateRepositoryFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.RateSvcFacade {
	return &rateService{rateRepo: rateRepo, currencySvc: currencySvc}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// Resolve returns the market rate for fromCurrency -> toCurrency. Direct rate first,
// then the inverse of the reverse-direction rate, else ErrRateUnavailable. The legacy
// per-currency fallback rate is deliberately not consulted here; profit accounting
// depends on a real market rate existing.
func (s *rateService) Resolve(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	if fromCurrency == toCurrency {
		return one, nil
	}

	direct, err := s.rateRepo.FindDirectRate(ctx, fromCurrency, toCurrency)
	if err == nil {
		return direct.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to look up direct rate %s->%s: %w", fromCurrency, toCurrency, err)
	}

	reverse, err := s.rateRepo.FindDirectRate(ctx, toCurrency, fromCurrency)
	if err == nil {
		return one.Div(reverse.Rate), nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to look up direct rate %s->%s: %w", toCurrency, fromCurrency, err)
	}

	return decimal.Zero, fmt.Errorf("%w: %s->%s", apperrors.ErrRateUnavailable, fromCurrency, toCurrency)
}

// DisplayRate returns the "1 X = Y Z" presentation of the pair's rate. The direction
// whose numeric rate is >= 1 wins; Inverted marks that the displayed direction is the
// reverse of the requested one. The transaction-direction rate from Resolve is what
// feeds balance and profit math regardless.
func (s *rateService) DisplayRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.DisplayRate, error) {
	rate, err := s.Resolve(ctx, fromCurrency, toCurrency)
	if err != nil {
		return nil, err
	}

	if rate.GreaterThanOrEqual(one) {
		return &domain.DisplayRate{
			FromCurrency: fromCurrency,
			ToCurrency:   toCurrency,
			Rate:         rate,
			Inverted:     false,
		}, nil
	}
	return &domain.DisplayRate{
		FromCurrency: toCurrency,
		ToCurrency:   fromCurrency,
		Rate:         one.Div(rate),
		Inverted:     true,
	}, nil
}

// SetDirectRate stores a manual direct rate for the pair, replacing any previous edge
// in the same direction. This is the persistence path behind the "supply a manual rate
// and retry" flow when an exchange was refused for a missing market rate.
func (s *rateService) SetDirectRate(ctx context.Context, req dto.SetDirectRateRequest, creatorUserID string) (*domain.DirectExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}
	if req.FromCurrency == req.ToCurrency {
		return nil, fmt.Errorf("%w: from and to currencies cannot be the same", apperrors.ErrValidation)
	}

	// Both endpoints must be catalog currencies.
	for _, name := range []string{req.FromCurrency, req.ToCurrency} {
		if _, err := s.currencySvc.GetCurrencyByName(ctx, name); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency %q not found", apperrors.ErrValidation, name)
			}
			return nil, fmt.Errorf("failed to validate currency %q: %w", name, err)
		}
	}

	now := time.Now().UTC()
	rate := domain.DirectExchangeRate{
		RateID:       uuid.NewString(),
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		Rate:         req.Rate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.UpsertDirectRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save direct rate: %w", err)
	}

	logger.Info("Direct rate saved", "from", rate.FromCurrency, "to", rate.ToCurrency, "rate", rate.Rate.String())
	return &rate, nil
}

// ListDirectRates retrieves every stored direct rate.
func (s *rateService) ListDirectRates(ctx context.Context) ([]domain.DirectExchangeRate, error) {
	rates, err := s.rateRepo.ListDirectRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list direct rates: %w", err)
	}
	if rates == nil {
		return []domain.DirectExchangeRate{}, nil
	}
	return rates, nil
}
