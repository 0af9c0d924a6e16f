package dto

import (
	"time"

	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartyRequest defines the data needed to create a customer, middleman or supplier.
type CreatePartyRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=CUSTOMER MIDDLEMAN SUPPLIER"`
}

// PartyResponse defines the data returned for a party record.
type PartyResponse struct {
	PartyID   string          `json:"partyID"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PartyBalancesResponse is a party's full position: base-currency balance plus the
// per-currency balances held against them.
type PartyBalancesResponse struct {
	PartyID          string                     `json:"partyID"`
	Name             string                     `json:"name"`
	Type             string                     `json:"type"`
	BaseCurrency     string                     `json:"baseCurrency"`
	Balance          decimal.Decimal            `json:"balance"`
	CurrencyBalances map[string]decimal.Decimal `json:"currencyBalances"`
}

// ToPartyResponse converts a domain.Party to its DTO.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:   p.PartyID,
		Name:      p.Name,
		Type:      string(p.Type),
		Balance:   p.Balance,
		CreatedAt: p.CreatedAt,
	}
}

// ToListPartyResponse converts a slice of domain parties to DTOs.
func ToListPartyResponse(parties []domain.Party) []PartyResponse {
	res := make([]PartyResponse, len(parties))
	for i := range parties {
		res[i] = ToPartyResponse(&parties[i])
	}
	return res
}
