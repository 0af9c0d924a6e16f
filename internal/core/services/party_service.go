package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aromex/aromex_backend/internal/apperrors"
	"github.com/aromex/aromex_backend/internal/core/domain"
	portsrepo "github.com/aromex/aromex_backend/internal/core/ports/repositories"
	portssvc "github.com/aromex/aromex_backend/internal/core/ports/services"
	"github.com/aromex/aromex_backend/internal/dto"
	"github.com/aromex/aromex_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// partyService manages customers, middlemen and suppliers, plus the operator's own
// cash position behind the "myself" sentinel.
type partyService struct {
	partyRepo    portsrepo.PartyRepositoryFacade
	baseCurrency string
}

// NewPartyService creates a new party service.
func NewPartyService(partyRepo portsrepo.PartyRepositoryFacade, baseCurrency string) portssvc.PartySvcFacade {
	return &partyService{partyRepo: partyRepo, baseCurrency: baseCurrency}
}

var _ portssvc.PartySvcFacade = (*partyService)(nil)

// CreateParty creates a customer, middleman or supplier with a zero starting balance.
func (s *partyService) CreateParty(ctx context.Context, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Name == "" {
		return nil, fmt.Errorf("%w: party name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	party := domain.Party{
		PartyID: uuid.NewString(),
		Name:    req.Name,
		Type:    domain.PartyType(req.Type),
		Balance: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		return nil, fmt.Errorf("failed to create party: %w", err)
	}

	logger.Info("Party created", "party_id", party.PartyID, "type", string(party.Type))
	return &party, nil
}

// GetParty retrieves a stored party record.
func (s *partyService) GetParty(ctx context.Context, partyID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrPartyNotFound, partyID)
		}
		return nil, fmt.Errorf("failed to find party %s: %w", partyID, err)
	}
	return party, nil
}

// ListParties retrieves parties, optionally filtered by type.
func (s *partyService) ListParties(ctx context.Context, partyType *domain.PartyType) ([]domain.Party, error) {
	parties, err := s.partyRepo.ListParties(ctx, partyType)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	if parties == nil {
		return []domain.Party{}, nil
	}
	return parties, nil
}

// GetPartyBalances retrieves a party's full position. The "myself" sentinel resolves
// against the cash record instead of a party row.
func (s *partyService) GetPartyBalances(ctx context.Context, partyID string) (*dto.PartyBalancesResponse, error) {
	resp := &dto.PartyBalancesResponse{
		PartyID:      partyID,
		BaseCurrency: s.baseCurrency,
	}

	if domain.IsMyself(partyID) {
		cash, err := s.partyRepo.GetCashBalance(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get cash balance: %w", err)
		}
		resp.Name = "Myself"
		resp.Type = "MYSELF"
		resp.Balance = cash
	} else {
		party, err := s.GetParty(ctx, partyID)
		if err != nil {
			return nil, err
		}
		resp.Name = party.Name
		resp.Type = string(party.Type)
		resp.Balance = party.Balance
	}

	balances, err := s.partyRepo.FindCurrencyBalances(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency balances for %s: %w", partyID, err)
	}
	if balances == nil {
		balances = map[string]decimal.Decimal{}
	}
	resp.CurrencyBalances = balances

	return resp, nil
}

// EnsurePartyExists verifies a transaction participant. The operator sentinel always
// exists; anything else must be a stored party.
func (s *partyService) EnsurePartyExists(ctx context.Context, partyID string) error {
	if domain.IsMyself(partyID) {
		return nil
	}
	_, err := s.GetParty(ctx, partyID)
	return err
}
