package repositories

import (
	"context"

	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PartyReader defines read operations for parties and their balances.
type PartyReader interface {
	// FindPartyByID retrieves a party record. The "myself" sentinel is not a stored
	// party; callers resolve it via GetCashBalance instead.
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// ListParties retrieves parties, optionally filtered by type (nil for all).
	ListParties(ctx context.Context, partyType *domain.PartyType) ([]domain.Party, error)

	// FindCurrencyBalances retrieves a party's non-base currency balances keyed by
	// currency name. Works for the "myself" sentinel as well.
	FindCurrencyBalances(ctx context.Context, partyID string) (map[string]decimal.Decimal, error)

	// GetCashBalance retrieves the operator's base-currency cash balance.
	GetCashBalance(ctx context.Context) (decimal.Decimal, error)
}

// PartyWriter defines write operations for party records.
type PartyWriter interface {
	// SaveParty inserts a new party record.
	SaveParty(ctx context.Context, party domain.Party) error
}

// PartyRepositoryFacade combines all party repository interfaces.
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
}
