package services

import (
	"context"

	"github.com/aromex/aromex_backend/internal/core/domain"
)

// ProfitSvcFacade derives exchange profit against current market rates.
type ProfitSvcFacade interface {
	// Profit computes (customerRate - marketRate) * amount for an exchange transaction,
	// denominated in the receiving currency. ErrRateUnavailable when the market rate is
	// missing; never a silent zero.
	Profit(ctx context.Context, txn *domain.Transaction) (*domain.ProfitResult, error)

	// TotalProfit aggregates exchange profit over a calendar-aligned timeframe, grouped
	// by receiving currency and converted to the base currency where possible.
	// Currencies lacking a base conversion are surfaced, not silently dropped.
	TotalProfit(ctx context.Context, timeframe domain.Timeframe) (*domain.ProfitReport, error)
}
