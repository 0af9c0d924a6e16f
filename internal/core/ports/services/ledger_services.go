package services

import (
	"context"

	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/aromex/aromex_backend/internal/dto"
)

// LedgerSvcFacade builds, commits and reverses ledger transactions.
type LedgerSvcFacade interface {
	// CreateTransaction validates the request, computes balance deltas for giver and
	// taker, and commits the record plus all deltas atomically. Exchange requests are
	// refused with ErrRateUnavailable when no market rate resolves.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// GetTransaction retrieves a committed transaction.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions newest-first with token pagination.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)

	// ReverseTransaction applies the exact inverse balance deltas and deletes the
	// record, as one atomic unit. On failure nothing is applied and the record stays.
	ReverseTransaction(ctx context.Context, transactionID string, requestingUserID string) error
}
