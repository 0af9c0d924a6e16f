package repositories

import (
	"context"
	"time"

	"github.com/aromex/aromex_backend/internal/core/domain"
)

// LedgerWriter defines the atomic write surface of the ledger. Both operations commit
// the transaction record and every balance delta as one database transaction; a partial
// application is never observable. Balance deltas are applied as server-side increments
// so concurrent writers cannot lose updates.
type LedgerWriter interface {
	// SaveTransaction persists the transaction record and applies the balance changes,
	// returning the post-commit balance snapshot for the affected parties.
	SaveTransaction(ctx context.Context, txn domain.Transaction, changes []domain.BalanceChange) (domain.BalanceSnapshot, error)

	// DeleteTransaction applies the compensating balance changes and removes the record.
	DeleteTransaction(ctx context.Context, transactionID string, changes []domain.BalanceChange) error
}

// LedgerReader defines read operations over committed transactions.
type LedgerReader interface {
	// FindTransactionByID retrieves a single transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions newest-first with token pagination.
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListExchangeTransactionsSince retrieves exchange transactions with timestamp >= since,
	// or all exchange transactions when since is nil.
	ListExchangeTransactionsSince(ctx context.Context, since *time.Time) ([]domain.Transaction, error)
}

// LedgerRepositoryFacade combines the ledger read and write interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
