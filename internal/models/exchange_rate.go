package models

import "github.com/shopspring/decimal"

// ExchangeRate is the database representation of a directed direct rate edge.
type ExchangeRate struct {
	RateID       string
	FromCurrency string
	ToCurrency   string
	Rate         decimal.Decimal
	AuditFields
}
