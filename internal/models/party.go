package models

import "github.com/shopspring/decimal"

// Party is the database representation of a customer, middleman or supplier.
type Party struct {
	PartyID string
	Name    string
	Type    string
	Balance decimal.Decimal
	AuditFields
}
