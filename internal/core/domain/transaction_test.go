package domain_test

import (
	"testing"
	"time"

	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func stringPtr(s string) *string {
	return &s
}

func TestTransaction_ReversalChanges(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        []domain.BalanceChange
	}{
		{
			name: "plain transfer mirrors both deltas",
			transaction: domain.Transaction{
				GiverID:  "giver",
				TakerID:  "taker",
				Amount:   decimal.NewFromInt(100),
				Currency: "USD",
			},
			want: []domain.BalanceChange{
				{PartyID: "giver", Currency: "USD", Delta: decimal.NewFromInt(100)},
				{PartyID: "taker", Currency: "USD", Delta: decimal.NewFromInt(-100)},
			},
		},
		{
			name: "exchange returns the received currency from the taker",
			transaction: domain.Transaction{
				GiverID:           "giver",
				TakerID:           "taker",
				Amount:            decimal.NewFromInt(100),
				Currency:          "USD",
				IsExchange:        true,
				CustomRate:        decimalPtr(decimal.NewFromInt(90)),
				ReceivingCurrency: stringPtr("INR"),
				ReceivedAmount:    decimalPtr(decimal.NewFromInt(9000)),
			},
			want: []domain.BalanceChange{
				{PartyID: "giver", Currency: "USD", Delta: decimal.NewFromInt(100)},
				{PartyID: "taker", Currency: "INR", Delta: decimal.NewFromInt(-9000)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transaction.ReversalChanges()
			assert.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].PartyID, got[i].PartyID)
				assert.Equal(t, tt.want[i].Currency, got[i].Currency)
				assert.True(t, tt.want[i].Delta.Equal(got[i].Delta), "delta %d: want %s got %s", i, tt.want[i].Delta, got[i].Delta)
			}
		})
	}
}

func TestTimeframe_Start(t *testing.T) {
	// A Thursday mid-afternoon.
	now := time.Date(2025, time.June, 12, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		timeframe domain.Timeframe
		want      time.Time
		bounded   bool
	}{
		{"day starts at midnight", domain.TimeframeDay, time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC), true},
		{"week starts on monday", domain.TimeframeWeek, time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC), true},
		{"month starts on the first", domain.TimeframeMonth, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), true},
		{"year starts on january first", domain.TimeframeYear, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{"all time is unbounded", domain.TimeframeAll, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, bounded := tt.timeframe.Start(now)
			assert.Equal(t, tt.bounded, bounded)
			if tt.bounded {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTimeframe_Start_WeekOnSunday(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday.
	now := time.Date(2025, time.June, 15, 23, 59, 0, 0, time.UTC)

	got, bounded := domain.TimeframeWeek.Start(now)

	assert.True(t, bounded)
	assert.Equal(t, time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC), got)
}

func TestInWindow_BoundaryInclusive(t *testing.T) {
	weekStart := time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		ts    time.Time
		start *time.Time
		want  bool
	}{
		{"exactly at the window start is included", weekStart, &weekStart, true},
		{"one second before the start is excluded", weekStart.Add(-time.Second), &weekStart, false},
		{"one nanosecond before the start is excluded", weekStart.Add(-time.Nanosecond), &weekStart, false},
		{"well inside the window is included", weekStart.Add(72 * time.Hour), &weekStart, true},
		{"nil start is unbounded", time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.InWindow(tt.ts, tt.start))
		})
	}
}

func TestBalanceSnapshot_SetGet(t *testing.T) {
	snapshot := domain.BalanceSnapshot{}
	snapshot.Set("myself", "USD", decimal.NewFromInt(250))

	assert.True(t, snapshot.Get("myself", "USD").Equal(decimal.NewFromInt(250)))
	assert.True(t, snapshot.Get("myself", "INR").IsZero())
	assert.True(t, snapshot.Get("unknown", "USD").IsZero())
}
