package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of a ledger transaction.
// BalancesAfter is stored as JSONB; the repository (un)marshals it.
type Transaction struct {
	TransactionID     string
	Timestamp         time.Time
	GiverID           string
	TakerID           string
	Amount            decimal.Decimal
	Currency          string
	Notes             string
	IsExchange        bool
	CustomRate        *decimal.Decimal
	ReceivingCurrency *string
	ReceivedAmount    *decimal.Decimal
	BalancesAfter     []byte
	AuditFields
}
