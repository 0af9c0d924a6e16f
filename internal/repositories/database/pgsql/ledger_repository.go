package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aromex/aromex_backend/internal/apperrors"
	"github.com/aromex/aromex_backend/internal/core/domain"
	portsrepo "github.com/aromex/aromex_backend/internal/core/ports/repositories"
	"github.com/aromex/aromex_backend/internal/models"
	"github.com/aromex/aromex_backend/internal/utils/mapping"
	"github.com/aromex/aromex_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, timestamp, giver_id, taker_id, amount, currency, notes, is_exchange,
		custom_rate, receiving_currency, received_amount, balances_after,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
	baseCurrency string
}

// newPgxLedgerRepository creates a new repository for ledger transactions. The base
// currency determines which balance table a delta lands in.
func newPgxLedgerRepository(pool *pgxpool.Pool, baseCurrency string) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		baseCurrency:   baseCurrency,
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// applyChange applies one balance delta as a server-side increment. Increments never
// read-modify-write in Go, so concurrent commits against the same party cannot lose
// updates.
func (r *PgxLedgerRepository) applyChange(ctx context.Context, tx pgx.Tx, change domain.BalanceChange) error {
	if change.Currency == r.baseCurrency {
		if domain.IsMyself(change.PartyID) {
			_, err := tx.Exec(ctx,
				`UPDATE cash SET balance = balance + $1, last_updated_at = now() WHERE id = 1;`,
				change.Delta,
			)
			if err != nil {
				return fmt.Errorf("failed to apply cash delta: %w", err)
			}
			return nil
		}

		tag, err := tx.Exec(ctx,
			`UPDATE parties SET balance = balance + $1, last_updated_at = now() WHERE party_id = $2;`,
			change.Delta, change.PartyID,
		)
		if err != nil {
			return fmt.Errorf("failed to apply balance delta for party %s: %w", change.PartyID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s", apperrors.ErrPartyNotFound, change.PartyID)
		}
		return nil
	}

	// Non-base currencies live in the shared per-party balance table; the "myself"
	// sentinel uses the same rows.
	_, err := tx.Exec(ctx, `
		INSERT INTO currency_balances (party_id, currency_name, balance, last_updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (party_id, currency_name) DO UPDATE SET
			balance = currency_balances.balance + EXCLUDED.balance,
			last_updated_at = now();`,
		change.PartyID, change.Currency, change.Delta,
	)
	if err != nil {
		return fmt.Errorf("failed to apply %s delta for party %s: %w", change.Currency, change.PartyID, err)
	}
	return nil
}

// partyPosition reads one participant's complete position inside the transaction: the
// base-currency balance (party record, or the cash record for the operator) plus every
// currency balance row they hold.
func (r *PgxLedgerRepository) partyPosition(ctx context.Context, tx pgx.Tx, partyID string) (decimal.Decimal, map[string]decimal.Decimal, error) {
	var base decimal.Decimal
	if domain.IsMyself(partyID) {
		if err := tx.QueryRow(ctx, `SELECT balance FROM cash WHERE id = 1;`).Scan(&base); err != nil {
			return decimal.Zero, nil, fmt.Errorf("failed to read cash balance: %w", err)
		}
	} else {
		err := tx.QueryRow(ctx, `SELECT balance FROM parties WHERE party_id = $1;`, partyID).Scan(&base)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return decimal.Zero, nil, fmt.Errorf("%w: %s", apperrors.ErrPartyNotFound, partyID)
			}
			return decimal.Zero, nil, fmt.Errorf("failed to read balance for party %s: %w", partyID, err)
		}
	}

	rows, err := tx.Query(ctx, `SELECT currency_name, balance FROM currency_balances WHERE party_id = $1;`, partyID)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to read currency balances for party %s: %w", partyID, err)
	}
	defer rows.Close()

	currencies := make(map[string]decimal.Decimal)
	for rows.Next() {
		var name string
		var balance decimal.Decimal
		if err := rows.Scan(&name, &balance); err != nil {
			return decimal.Zero, nil, fmt.Errorf("failed to scan currency balance row: %w", err)
		}
		currencies[name] = balance
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to read currency balance rows for party %s: %w", partyID, err)
	}
	return base, currencies, nil
}

// setPartyPosition records one participant's full position in the snapshot: the base
// balance keyed by the base currency name, plus every other holding.
func setPartyPosition(snapshot domain.BalanceSnapshot, partyID, baseCurrency string, base decimal.Decimal, currencies map[string]decimal.Decimal) {
	snapshot.Set(partyID, baseCurrency, base)
	for name, balance := range currencies {
		snapshot.Set(partyID, name, balance)
	}
}

// SaveTransaction persists the transaction record and applies every balance delta in one
// database transaction. The returned snapshot carries both participants' complete
// positions (base currency and every other holding) as observed after the deltas, not
// just the balances this transaction moved.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, changes []domain.BalanceChange) (domain.BalanceSnapshot, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	for _, change := range changes {
		if err := r.applyChange(ctx, tx, change); err != nil {
			return nil, err
		}
	}

	snapshot := domain.BalanceSnapshot{}
	for _, partyID := range []string{txn.GiverID, txn.TakerID} {
		base, currencies, err := r.partyPosition(ctx, tx, partyID)
		if err != nil {
			return nil, err
		}
		setPartyPosition(snapshot, partyID, r.baseCurrency, base, currencies)
	}

	txn.BalancesAfter = snapshot
	modelTxn, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.Timestamp,
		modelTxn.GiverID,
		modelTxn.TakerID,
		modelTxn.Amount,
		modelTxn.Currency,
		modelTxn.Notes,
		modelTxn.IsExchange,
		modelTxn.CustomRate,
		modelTxn.ReceivingCurrency,
		modelTxn.ReceivedAmount,
		modelTxn.BalancesAfter,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction %s: %w", modelTxn.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// DeleteTransaction applies the compensating deltas and removes the record, atomically.
// A concurrent reversal of the same transaction loses on the DELETE row count and rolls
// its deltas back.
func (r *PgxLedgerRepository) DeleteTransaction(ctx context.Context, transactionID string, changes []domain.BalanceChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	for _, change := range changes {
		if err := r.applyChange(ctx, tx, change); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}

	return r.Commit(ctx, tx)
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var txn models.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.Timestamp,
		&txn.GiverID,
		&txn.TakerID,
		&txn.Amount,
		&txn.Currency,
		&txn.Notes,
		&txn.IsExchange,
		&txn.CustomRate,
		&txn.ReceivingCurrency,
		&txn.ReceivedAmount,
		&txn.BalancesAfter,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	return txn, err
}

// FindTransactionByID retrieves a single transaction.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	modelTxn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	domainTxn, err := mapping.ToDomainTransaction(modelTxn)
	if err != nil {
		return nil, err
	}
	return &domainTxn, nil
}

// ListTransactions retrieves transactions newest-first using keyset pagination over
// (timestamp, transaction_id).
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		ts, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` WHERE (timestamp, transaction_id) < ($1, $2)`
		args = append(args, ts, id)
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY timestamp DESC, transaction_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to collect transaction rows: %w", err)
	}

	var newNextToken *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[len(modelTxns)-1]
		token := pagination.EncodeToken(last.Timestamp, last.TransactionID)
		newNextToken = &token
	}

	txns := make([]domain.Transaction, len(modelTxns))
	for i, m := range modelTxns {
		txns[i], err = mapping.ToDomainTransaction(m)
		if err != nil {
			return nil, nil, err
		}
	}
	return txns, newNextToken, nil
}

// ListExchangeTransactionsSince retrieves exchange transactions with timestamp >= since,
// or all exchange transactions when since is nil.
func (r *PgxLedgerRepository) ListExchangeTransactionsSince(ctx context.Context, since *time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE is_exchange AND ($1::timestamptz IS NULL OR timestamp >= $1)
		ORDER BY timestamp;`

	rows, err := r.Pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange transactions: %w", err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect exchange transaction rows: %w", err)
	}

	txns := make([]domain.Transaction, len(modelTxns))
	for i, m := range modelTxns {
		txns[i], err = mapping.ToDomainTransaction(m)
		if err != nil {
			return nil, err
		}
	}
	return txns, nil
}
