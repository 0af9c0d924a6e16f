package domain

import "github.com/shopspring/decimal"

// Currency represents a supported currency in the catalog.
// Name and Symbol are unique across the catalog.
type Currency struct {
	CurrencyID   string          `json:"currencyID"`   // Primary Key (e.g., UUID)
	Name         string          `json:"name"`         // e.g., "INR" (unique)
	Symbol       string          `json:"symbol"`       // e.g., "₹" (unique)
	ExchangeRate decimal.Decimal `json:"exchangeRate"` // Legacy units-per-base rate; fallback only, never used for profit
	AuditFields
}
