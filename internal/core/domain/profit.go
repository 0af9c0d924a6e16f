package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Timeframe selects a calendar-aligned reporting window relative to now.
type Timeframe string

const (
	TimeframeDay   Timeframe = "day"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
	TimeframeAll   Timeframe = "all"
)

// Valid reports whether t is one of the supported timeframes.
func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeDay, TimeframeWeek, TimeframeMonth, TimeframeYear, TimeframeAll:
		return true
	}
	return false
}

// Start returns the inclusive lower bound of the window anchored at now. The windows are
// calendar-aligned, not rolling: start of today, start of the ISO week (Monday), first of
// the month, January 1st. The second return is false for the all-time window.
func (t Timeframe) Start(now time.Time) (time.Time, bool) {
	loc := now.Location()
	switch t {
	case TimeframeDay:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), true
	case TimeframeWeek:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -daysSinceMonday), true
	case TimeframeMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), true
	case TimeframeYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc), true
	default:
		return time.Time{}, false
	}
}

// InWindow reports whether ts falls inside a window with the given inclusive start.
// A timestamp exactly at the start belongs to the window; one instant earlier does not.
// A nil start means unbounded. Storage pre-filters with the same rule (timestamp >= start).
func InWindow(ts time.Time, start *time.Time) bool {
	return start == nil || !ts.Before(*start)
}

// ProfitResult is the profit of a single exchange transaction, denominated in the
// transaction's receiving currency.
type ProfitResult struct {
	TransactionID string          `json:"transactionID"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
}

// CurrencyProfit is an aggregated profit figure for one receiving currency.
// BaseAmount is nil when no conversion to the base currency could be resolved; such
// entries are excluded from the combined base total and listed as gaps.
type CurrencyProfit struct {
	Currency   string           `json:"currency"`
	Amount     decimal.Decimal  `json:"amount"`
	BaseAmount *decimal.Decimal `json:"baseAmount,omitempty"`
}

// ProfitReport aggregates exchange profit over a timeframe. Unconverted lists currencies
// whose totals could not be converted to the base currency; MissingMarketRate lists
// transactions whose own market rate no longer resolves. Both are surfaced rather than
// silently dropped.
type ProfitReport struct {
	Timeframe         Timeframe        `json:"timeframe"`
	From              *time.Time       `json:"from,omitempty"` // nil for all-time
	ByCurrency        []CurrencyProfit `json:"byCurrency"`
	TotalBase         decimal.Decimal  `json:"totalBase"`
	BaseCurrency      string           `json:"baseCurrency"`
	Unconverted       []string         `json:"unconverted,omitempty"`
	MissingMarketRate []string         `json:"missingMarketRate,omitempty"`
}
