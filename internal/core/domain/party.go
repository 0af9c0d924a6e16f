package domain

import "github.com/shopspring/decimal"

// PartyType tags a party record as a customer, middleman or supplier.
// All three live in one table; the tag replaces the legacy probe-each-collection lookup.
type PartyType string

const (
	PartyCustomer  PartyType = "CUSTOMER"
	PartyMiddleman PartyType = "MIDDLEMAN"
	PartySupplier  PartyType = "SUPPLIER"
)

// MyselfID is the sentinel party ID for the operator's own position. It is not a stored
// party record; its base-currency balance lives in the cash record and its non-base
// balances live in the shared currency balance table under this ID.
const MyselfID = "myself"

// Party represents a customer, middleman or supplier.
// Balance is denominated in the base currency; balances in other currencies are tracked
// per currency in CurrencyBalances.
type Party struct {
	PartyID string          `json:"partyID"` // Primary Key (e.g., UUID)
	Name    string          `json:"name"`
	Type    PartyType       `json:"type"`
	Balance decimal.Decimal `json:"balance"` // Base-currency balance
	AuditFields
}

// IsMyself reports whether the ID refers to the operator sentinel.
func IsMyself(partyID string) bool {
	return partyID == MyselfID
}
