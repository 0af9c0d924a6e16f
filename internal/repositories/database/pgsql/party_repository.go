package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/aromex/aromex_backend/internal/apperrors"
	"github.com/aromex/aromex_backend/internal/core/domain"
	portsrepo "github.com/aromex/aromex_backend/internal/core/ports/repositories"
	"github.com/aromex/aromex_backend/internal/models"
	"github.com/aromex/aromex_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates a new repository for party and balance data.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

// SaveParty inserts a new party record.
func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	modelParty := mapping.ToModelParty(party)

	query := `
		INSERT INTO parties (party_id, name, type, balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelParty.PartyID,
		modelParty.Name,
		modelParty.Type,
		modelParty.Balance,
		modelParty.CreatedAt,
		modelParty.CreatedBy,
		modelParty.LastUpdatedAt,
		modelParty.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: party %s", apperrors.ErrDuplicate, modelParty.PartyID)
		}
		return fmt.Errorf("failed to save party %s: %w", modelParty.PartyID, err)
	}
	return nil
}

// FindPartyByID retrieves a party record.
func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := `
		SELECT party_id, name, type, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM parties
		WHERE party_id = $1;
	`
	var modelParty models.Party
	err := r.Pool.QueryRow(ctx, query, partyID).Scan(
		&modelParty.PartyID,
		&modelParty.Name,
		&modelParty.Type,
		&modelParty.Balance,
		&modelParty.CreatedAt,
		&modelParty.CreatedBy,
		&modelParty.LastUpdatedAt,
		&modelParty.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find party %s: %w", partyID, err)
	}

	domainParty := mapping.ToDomainParty(modelParty)
	return &domainParty, nil
}

// ListParties retrieves parties, optionally filtered by type.
func (r *PgxPartyRepository) ListParties(ctx context.Context, partyType *domain.PartyType) ([]domain.Party, error) {
	query := `
		SELECT party_id, name, type, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM parties
		WHERE ($1::text IS NULL OR type = $1)
		ORDER BY name;
	`
	var typeArg *string
	if partyType != nil {
		t := string(*partyType)
		typeArg = &t
	}

	rows, err := r.Pool.Query(ctx, query, typeArg)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	defer rows.Close()

	modelParties, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Party, error) {
		var party models.Party
		err := row.Scan(
			&party.PartyID,
			&party.Name,
			&party.Type,
			&party.Balance,
			&party.CreatedAt,
			&party.CreatedBy,
			&party.LastUpdatedAt,
			&party.LastUpdatedBy,
		)
		return party, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect party rows: %w", err)
	}

	parties := make([]domain.Party, len(modelParties))
	for i, m := range modelParties {
		parties[i] = mapping.ToDomainParty(m)
	}
	return parties, nil
}

// FindCurrencyBalances retrieves a party's non-base currency balances keyed by currency
// name. The "myself" sentinel shares the same table.
func (r *PgxPartyRepository) FindCurrencyBalances(ctx context.Context, partyID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT currency_name, balance
		FROM currency_balances
		WHERE party_id = $1
		ORDER BY currency_name;
	`
	rows, err := r.Pool.Query(ctx, query, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency balances for %s: %w", partyID, err)
	}
	defer rows.Close()

	balances := make(map[string]decimal.Decimal)
	for rows.Next() {
		var currency string
		var balance decimal.Decimal
		if err := rows.Scan(&currency, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan currency balance row: %w", err)
		}
		balances[currency] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read currency balance rows: %w", err)
	}
	return balances, nil
}

// GetCashBalance retrieves the operator's base-currency cash balance.
func (r *PgxPartyRepository) GetCashBalance(ctx context.Context) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, `SELECT balance FROM cash WHERE id = 1;`).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The cash row is seeded by migrations; missing means an uninitialized database.
			return decimal.Zero, fmt.Errorf("cash record missing: %w", apperrors.ErrInternal)
		}
		return decimal.Zero, fmt.Errorf("failed to read cash balance: %w", err)
	}
	return balance, nil
}
