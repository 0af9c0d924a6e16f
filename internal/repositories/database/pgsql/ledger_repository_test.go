package pgsql

import (
	"testing"

	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSetPartyPosition_IncludesEveryHolding(t *testing.T) {
	snapshot := domain.BalanceSnapshot{}

	setPartyPosition(snapshot, "party-1", "CAD", decimal.NewFromInt(500), map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(-100),
		"INR": decimal.NewFromInt(9000),
	})

	assert.Len(t, snapshot["party-1"], 3)
	assert.True(t, snapshot.Get("party-1", "CAD").Equal(decimal.NewFromInt(500)))
	assert.True(t, snapshot.Get("party-1", "USD").Equal(decimal.NewFromInt(-100)))
	assert.True(t, snapshot.Get("party-1", "INR").Equal(decimal.NewFromInt(9000)))
}

func TestSetPartyPosition_BaseBalanceAlwaysPresent(t *testing.T) {
	snapshot := domain.BalanceSnapshot{}

	// A party with no other holdings still appears with its base balance, even at zero.
	setPartyPosition(snapshot, domain.MyselfID, "CAD", decimal.Zero, nil)

	assert.Len(t, snapshot[domain.MyselfID], 1)
	assert.True(t, snapshot.Get(domain.MyselfID, "CAD").Equal(decimal.Zero))
}

func TestSetPartyPosition_TwoParticipants(t *testing.T) {
	snapshot := domain.BalanceSnapshot{}

	setPartyPosition(snapshot, "giver-1", "CAD", decimal.NewFromInt(250), map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(-100),
		"AED": decimal.NewFromInt(40),
	})
	setPartyPosition(snapshot, domain.MyselfID, "CAD", decimal.NewFromInt(1200), map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(100),
	})

	// Holdings untouched by the transaction (AED here) stay in the snapshot.
	assert.True(t, snapshot.Get("giver-1", "AED").Equal(decimal.NewFromInt(40)))
	assert.Len(t, snapshot["giver-1"], 3)
	assert.Len(t, snapshot[domain.MyselfID], 2)
}
