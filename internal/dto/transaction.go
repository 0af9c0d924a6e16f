package dto

import (
	"time"

	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transfer or exchange.
// For exchanges, CustomRate may be entered in the inverted display direction; set
// RateInverted so the rate is converted back to the giving -> receiving direction before
// any balance or profit math.
type CreateTransactionRequest struct {
	GiverID  string          `json:"giverID" binding:"required"`
	TakerID  string          `json:"takerID" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency" binding:"required"`
	Notes    string          `json:"notes"`

	IsExchange        bool             `json:"isExchange"`
	CustomRate        *decimal.Decimal `json:"customExchangeRate,omitempty"`
	ReceivingCurrency *string          `json:"receivingCurrency,omitempty"`
	RateInverted      bool             `json:"rateInverted,omitempty"`

	// Timestamp defaults to now when omitted.
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// TransactionResponse defines the data returned for a committed transaction.
// Profit is attached for exchange transactions when the market rate resolves; it is nil
// (with ProfitUnavailable set) when the rate is missing, never a silent zero.
type TransactionResponse struct {
	TransactionID     string                                `json:"transactionID"`
	Timestamp         time.Time                             `json:"timestamp"`
	GiverID           string                                `json:"giverID"`
	TakerID           string                                `json:"takerID"`
	Amount            decimal.Decimal                       `json:"amount"`
	Currency          string                                `json:"currency"`
	Notes             string                                `json:"notes,omitempty"`
	IsExchange        bool                                  `json:"isExchange"`
	CustomRate        *decimal.Decimal                      `json:"customExchangeRate,omitempty"`
	ReceivingCurrency *string                               `json:"receivingCurrency,omitempty"`
	ReceivedAmount    *decimal.Decimal                      `json:"receivedAmount,omitempty"`
	BalancesAfter     map[string]map[string]decimal.Decimal `json:"balancesAfterTransaction,omitempty"`
	Profit            *ProfitResponse                       `json:"profit,omitempty"`
	ProfitUnavailable bool                                  `json:"profitUnavailable,omitempty"`
}

// ListTransactionsParams holds pagination parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a page of transactions plus the token for the next page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     t.TransactionID,
		Timestamp:         t.Timestamp,
		GiverID:           t.GiverID,
		TakerID:           t.TakerID,
		Amount:            t.Amount,
		Currency:          t.Currency,
		Notes:             t.Notes,
		IsExchange:        t.IsExchange,
		CustomRate:        t.CustomRate,
		ReceivingCurrency: t.ReceivingCurrency,
		ReceivedAmount:    t.ReceivedAmount,
		BalancesAfter:     t.BalancesAfter,
	}
}
