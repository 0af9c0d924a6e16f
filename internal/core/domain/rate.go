package domain

import "github.com/shopspring/decimal"

// DirectExchangeRate is a directed rate edge between two named currencies.
// It is the authoritative rate source whenever present; it is not guaranteed to be
// symmetric or to exist for every pair.
type DirectExchangeRate struct {
	RateID       string          `json:"rateID"` // Primary Key (e.g., UUID)
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"` // Units of ToCurrency per 1 FromCurrency; > 0
	AuditFields
}

// DisplayRate is the "1 X = Y Z" presentation of a resolved rate. When both directions
// resolve, the direction with a numeric rate >= 1 is chosen. Inverted reports whether the
// displayed direction is the reverse of the requested one; presentation only, the
// transaction-direction rate is what feeds profit math.
type DisplayRate struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	Inverted     bool            `json:"inverted"`
}
