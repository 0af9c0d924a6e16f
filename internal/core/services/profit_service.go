package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aromex/aromex_backend/internal/apperrors"
	"github.com/aromex/aromex_backend/internal/core/domain"
	portsrepo "github.com/aromex/aromex_backend/internal/core/ports/repositories"
	portssvc "github.com/aromex/aromex_backend/internal/core/ports/services"
	"github.com/aromex/aromex_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// profitService derives exchange profit from the market rate in force right now.
// Profit is never stored on the transaction; historical reports shift as rates move.
type profitService struct {
	ledgerRepo   portsrepo.LedgerReader
	rateSvc      portssvc.RateSvcFacade
	baseCurrency string
	now          func() time.Time
}

// NewProfitService creates a new profit service.
func NewProfitService(ledgerRepo portsrepo.LedgerReader, rateSvc portssvc.RateSvcFacade, baseCurrency string) portssvc.ProfitSvcFacade {
	return &profitService{
		ledgerRepo:   ledgerRepo,
		rateSvc:      rateSvc,
		baseCurrency: baseCurrency,
		now:          time.Now,
	}
}

var _ portssvc.ProfitSvcFacade = (*profitService)(nil)

// Profit computes (customerRate - marketRate) * amount for a single exchange, in the
// receiving currency. A positive figure means the customer rate beat the market.
// ErrRateUnavailable propagates when the market rate no longer resolves; a missing rate
// must never read as zero profit.
func (s *profitService) Profit(ctx context.Context, txn *domain.Transaction) (*domain.ProfitResult, error) {
	if !txn.IsExchange || txn.CustomRate == nil || txn.ReceivingCurrency == nil {
		return nil, fmt.Errorf("%w: profit is only defined for exchange transactions", apperrors.ErrValidation)
	}

	marketRate, err := s.rateSvc.Resolve(ctx, txn.Currency, *txn.ReceivingCurrency)
	if err != nil {
		return nil, err
	}

	return &domain.ProfitResult{
		TransactionID: txn.TransactionID,
		Amount:        txn.CustomRate.Sub(marketRate).Mul(txn.Amount),
		Currency:      *txn.ReceivingCurrency,
	}, nil
}

// TotalProfit aggregates exchange profit over a calendar-aligned window, grouped by
// receiving currency and converted to the base currency where a rate resolves.
// Transactions with no resolvable market rate and currencies with no base conversion
// are listed in the report instead of being dropped.
func (s *profitService) TotalProfit(ctx context.Context, timeframe domain.Timeframe) (*domain.ProfitReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !timeframe.Valid() {
		return nil, fmt.Errorf("%w: unknown timeframe %q", apperrors.ErrValidation, timeframe)
	}

	var since *time.Time
	if start, ok := timeframe.Start(s.now()); ok {
		since = &start
	}

	txns, err := s.ledgerRepo.ListExchangeTransactionsSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange transactions: %w", err)
	}

	report := &domain.ProfitReport{
		Timeframe:    timeframe,
		From:         since,
		ByCurrency:   []domain.CurrencyProfit{},
		TotalBase:    decimal.Zero,
		BaseCurrency: s.baseCurrency,
	}

	totals := map[string]decimal.Decimal{}
	for i := range txns {
		if !domain.InWindow(txns[i].Timestamp, since) {
			continue
		}
		result, err := s.Profit(ctx, &txns[i])
		if err != nil {
			if errors.Is(err, apperrors.ErrRateUnavailable) {
				report.MissingMarketRate = append(report.MissingMarketRate, txns[i].TransactionID)
				continue
			}
			return nil, err
		}
		totals[result.Currency] = totals[result.Currency].Add(result.Amount)
	}

	currencies := make([]string, 0, len(totals))
	for currency := range totals {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	for _, currency := range currencies {
		entry := domain.CurrencyProfit{Currency: currency, Amount: totals[currency]}
		switch {
		case currency == s.baseCurrency:
			base := entry.Amount
			entry.BaseAmount = &base
		default:
			rate, err := s.rateSvc.Resolve(ctx, currency, s.baseCurrency)
			if err != nil {
				if !errors.Is(err, apperrors.ErrRateUnavailable) {
					return nil, err
				}
				report.Unconverted = append(report.Unconverted, currency)
			} else {
				base := entry.Amount.Mul(rate)
				entry.BaseAmount = &base
			}
		}
		if entry.BaseAmount != nil {
			report.TotalBase = report.TotalBase.Add(*entry.BaseAmount)
		}
		report.ByCurrency = append(report.ByCurrency, entry)
	}

	logger.Info("Profit report computed",
		"timeframe", string(timeframe),
		"exchange_count", len(txns),
		"currencies", len(report.ByCurrency),
	)
	return report, nil
}
