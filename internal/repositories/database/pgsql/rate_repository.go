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
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRateRepository struct {
	BaseRepository
}

// newPgxRateRepository creates a new repository for direct exchange rate data.
func newPgxRateRepository(pool *pgxpool.Pool) portsrepo.RateRepositoryFacade {
	return &PgxRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RateRepositoryFacade = (*PgxRateRepository)(nil)

// UpsertDirectRate inserts or replaces the rate edge for the (from, to) pair.
func (r *PgxRateRepository) UpsertDirectRate(ctx context.Context, rate domain.DirectExchangeRate) error {
	modelRate := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (rate_id, from_currency, to_currency, rate, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (from_currency, to_currency) DO UPDATE SET
			rate = EXCLUDED.rate,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	_, err := r.Pool.Exec(ctx, query,
		modelRate.RateID,
		modelRate.FromCurrency,
		modelRate.ToCurrency,
		modelRate.Rate,
		modelRate.CreatedAt,
		modelRate.CreatedBy,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rate %s->%s: %w", modelRate.FromCurrency, modelRate.ToCurrency, err)
	}
	return nil
}

// FindDirectRate retrieves the stored rate for the exact from -> to direction.
func (r *PgxRateRepository) FindDirectRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.DirectExchangeRate, error) {
	query := `
		SELECT rate_id, from_currency, to_currency, rate, created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2;
	`
	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, fromCurrency, toCurrency).Scan(
		&modelRate.RateID,
		&modelRate.FromCurrency,
		&modelRate.ToCurrency,
		&modelRate.Rate,
		&modelRate.CreatedAt,
		&modelRate.CreatedBy,
		&modelRate.LastUpdatedAt,
		&modelRate.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rate %s->%s: %w", fromCurrency, toCurrency, err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// ListDirectRates retrieves every stored direct rate.
func (r *PgxRateRepository) ListDirectRates(ctx context.Context) ([]domain.DirectExchangeRate, error) {
	query := `
		SELECT rate_id, from_currency, to_currency, rate, created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		ORDER BY from_currency, to_currency;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		var rate models.ExchangeRate
		err := row.Scan(
			&rate.RateID,
			&rate.FromCurrency,
			&rate.ToCurrency,
			&rate.Rate,
			&rate.CreatedAt,
			&rate.CreatedBy,
			&rate.LastUpdatedAt,
			&rate.LastUpdatedBy,
		)
		return rate, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect rate rows: %w", err)
	}

	rates := make([]domain.DirectExchangeRate, len(modelRates))
	for i, m := range modelRates {
		rates[i] = mapping.ToDomainExchangeRate(m)
	}
	return rates, nil
}
