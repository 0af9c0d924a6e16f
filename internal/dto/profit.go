package dto

import (
	"time"

	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProfitResponse is the profit of a single exchange transaction.
type ProfitResponse struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// CurrencyProfitResponse is an aggregated profit figure for one receiving currency.
type CurrencyProfitResponse struct {
	Currency   string           `json:"currency"`
	Amount     decimal.Decimal  `json:"amount"`
	BaseAmount *decimal.Decimal `json:"baseAmount,omitempty"`
}

// ProfitReportResponse is the aggregated profit report for a timeframe.
type ProfitReportResponse struct {
	Timeframe         string                   `json:"timeframe"`
	From              *time.Time               `json:"from,omitempty"`
	BaseCurrency      string                   `json:"baseCurrency"`
	ByCurrency        []CurrencyProfitResponse `json:"byCurrency"`
	TotalBase         decimal.Decimal          `json:"totalBase"`
	Unconverted       []string                 `json:"unconverted,omitempty"`
	MissingMarketRate []string                 `json:"missingMarketRate,omitempty"`
}

// ToProfitResponse converts a domain.ProfitResult to its DTO.
func ToProfitResponse(p *domain.ProfitResult) *ProfitResponse {
	if p == nil {
		return nil
	}
	return &ProfitResponse{Amount: p.Amount, Currency: p.Currency}
}

// ToProfitReportResponse converts a domain.ProfitReport to its DTO.
func ToProfitReportResponse(r *domain.ProfitReport) ProfitReportResponse {
	byCurrency := make([]CurrencyProfitResponse, len(r.ByCurrency))
	for i, cp := range r.ByCurrency {
		byCurrency[i] = CurrencyProfitResponse{
			Currency:   cp.Currency,
			Amount:     cp.Amount,
			BaseAmount: cp.BaseAmount,
		}
	}
	return ProfitReportResponse{
		Timeframe:         string(r.Timeframe),
		From:              r.From,
		BaseCurrency:      r.BaseCurrency,
		ByCurrency:        byCurrency,
		TotalBase:         r.TotalBase,
		Unconverted:       r.Unconverted,
		MissingMarketRate: r.MissingMarketRate,
	}
}
