package pgsql

import (
	portsrepo "github.com/aromex/aromex_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository against the shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool, baseCurrency string) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo: newPgxCurrencyRepository(dbPool),
		RateRepo:     newPgxRateRepository(dbPool),
		PartyRepo:    newPgxPartyRepository(dbPool),
		LedgerRepo:   newPgxLedgerRepository(dbPool, baseCurrency),
		UserRepo:     newPgxUserRepository(dbPool),
	}
}
