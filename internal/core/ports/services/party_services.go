package services

import (
	"context"

	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/aromex/aromex_backend/internal/dto"
)

// PartySvcFacade exposes party records and balance positions.
type PartySvcFacade interface {
	// CreateParty creates a customer, middleman or supplier.
	CreateParty(ctx context.Context, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error)

	// GetParty retrieves a party record; ErrPartyNotFound when absent.
	GetParty(ctx context.Context, partyID string) (*domain.Party, error)

	// ListParties retrieves parties, optionally filtered by type.
	ListParties(ctx context.Context, partyType *domain.PartyType) ([]domain.Party, error)

	// GetPartyBalances retrieves a party's full position: base balance plus
	// per-currency balances. Accepts the "myself" sentinel, resolved against the cash
	// record.
	GetPartyBalances(ctx context.Context, partyID string) (*dto.PartyBalancesResponse, error)

	// EnsurePartyExists verifies a transaction participant. The "myself" sentinel
	// always exists; anything else must be a stored party.
	EnsurePartyExists(ctx context.Context, partyID string) error
}
