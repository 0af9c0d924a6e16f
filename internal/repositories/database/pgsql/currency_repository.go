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
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

// SaveCurrency inserts a new catalog currency.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	modelCurr := mapping.ToModelCurrency(currency)

	query := `
		INSERT INTO currencies (currency_id, name, symbol, exchange_rate, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelCurr.CurrencyID,
		modelCurr.Name,
		modelCurr.Symbol,
		modelCurr.ExchangeRate,
		modelCurr.CreatedAt,
		modelCurr.CreatedBy,
		modelCurr.LastUpdatedAt,
		modelCurr.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, modelCurr.Name)
		}
		return fmt.Errorf("failed to save currency %s: %w", modelCurr.Name, err)
	}
	return nil
}

// FindCurrencyByName retrieves a currency by its unique name.
func (r *PgxCurrencyRepository) FindCurrencyByName(ctx context.Context, name string) (*domain.Currency, error) {
	query := `
		SELECT currency_id, name, symbol, exchange_rate, created_at, created_by, last_updated_at, last_updated_by
		FROM currencies
		WHERE name = $1;
	`
	var modelCurr models.Currency
	err := r.Pool.QueryRow(ctx, query, name).Scan(
		&modelCurr.CurrencyID,
		&modelCurr.Name,
		&modelCurr.Symbol,
		&modelCurr.ExchangeRate,
		&modelCurr.CreatedAt,
		&modelCurr.CreatedBy,
		&modelCurr.LastUpdatedAt,
		&modelCurr.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by name %s: %w", name, err)
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// ListCurrencies retrieves all currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `
		SELECT currency_id, name, symbol, exchange_rate, created_at, created_by, last_updated_at, last_updated_by
		FROM currencies
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		var currency models.Currency
		err := row.Scan(
			&currency.CurrencyID,
			&currency.Name,
			&currency.Symbol,
			&currency.ExchangeRate,
			&currency.CreatedAt,
			&currency.CreatedBy,
			&currency.LastUpdatedAt,
			&currency.LastUpdatedBy,
		)
		return currency, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect currency rows: %w", err)
	}

	currencies := make([]domain.Currency, len(modelCurrencies))
	for i, m := range modelCurrencies {
		currencies[i] = mapping.ToDomainCurrency(m)
	}
	return currencies, nil
}
