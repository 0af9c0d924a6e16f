package models

import "github.com/shopspring/decimal"

// Currency is the database representation of a catalog currency.
type Currency struct {
	CurrencyID   string
	Name         string
	Symbol       string
	ExchangeRate decimal.Decimal
	AuditFields
}
