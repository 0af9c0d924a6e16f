package domain

import "github.com/shopspring/decimal"

// BalanceChange is a single signed delta against one party's balance in one currency.
// Base-currency deltas target the party record (or the cash record for the operator);
// all other currencies target the per-party currency balance rows.
type BalanceChange struct {
	PartyID  string
	Currency string
	Delta    decimal.Decimal
}

// BalanceSnapshot maps partyID -> currency -> balance as observed immediately after a
// transaction commits. The operator appears under the "myself" sentinel key.
type BalanceSnapshot map[string]map[string]decimal.Decimal

// Set records a balance in the snapshot, allocating the inner map on first use.
func (s BalanceSnapshot) Set(partyID, currency string, balance decimal.Decimal) {
	if s[partyID] == nil {
		s[partyID] = make(map[string]decimal.Decimal)
	}
	s[partyID][currency] = balance
}

// Get returns the recorded balance, or zero when absent.
func (s BalanceSnapshot) Get(partyID, currency string) decimal.Decimal {
	if m, ok := s[partyID]; ok {
		if b, ok := m[currency]; ok {
			return b
		}
	}
	return decimal.Zero
}
