package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a committed ledger entry: a plain transfer of one currency between two
// parties, or a currency exchange where the taker hands back a different currency at a
// custom rate. Immutable once written; removal only via compensating reversal.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (e.g., UUID)
	Timestamp     time.Time       `json:"timestamp"`
	GiverID       string          `json:"giverID"` // Party handing over Amount of Currency
	TakerID       string          `json:"takerID"` // Party receiving; != GiverID
	Amount        decimal.Decimal `json:"amount"`  // Positive
	Currency      string          `json:"currency"`
	Notes         string          `json:"notes"`
	IsExchange    bool            `json:"isExchange"`

	// Exchange-only fields. CustomRate is the customer rate in the giving -> receiving
	// direction; ReceivedAmount = Amount * CustomRate in ReceivingCurrency.
	CustomRate        *decimal.Decimal `json:"customExchangeRate,omitempty"`
	ReceivingCurrency *string          `json:"receivingCurrency,omitempty"`
	ReceivedAmount    *decimal.Decimal `json:"receivedAmount,omitempty"`

	// BalancesAfter captures giver and taker balances right after the commit.
	BalancesAfter BalanceSnapshot `json:"balancesAfterTransaction"`
	AuditFields
}

// ReversalChanges computes the balance deltas that undo this transaction exactly:
// the giver gets Amount back in Currency and the taker gives back what was credited
// (ReceivedAmount of ReceivingCurrency for exchanges, Amount of Currency otherwise).
func (t *Transaction) ReversalChanges() []BalanceChange {
	changes := []BalanceChange{
		{PartyID: t.GiverID, Currency: t.Currency, Delta: t.Amount},
	}
	if t.IsExchange && t.ReceivingCurrency != nil && t.ReceivedAmount != nil {
		changes = append(changes, BalanceChange{
			PartyID:  t.TakerID,
			Currency: *t.ReceivingCurrency,
			Delta:    t.ReceivedAmount.Neg(),
		})
	} else {
		changes = append(changes, BalanceChange{
			PartyID:  t.TakerID,
			Currency: t.Currency,
			Delta:    t.Amount.Neg(),
		})
	}
	return changes
}
