package holdings

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstrand/papertrader/internal/ledger"
)

func seed(t *testing.T, records []ledger.Record) *ledger.MemoryStore {
	t.Helper()
	store := ledger.NewMemoryStore()
	store.SetBalance(1, decimal.NewFromInt(10000))
	for _, r := range records {
		_, err := store.AppendAndAdjustBalance(context.Background(), 1, r, decimal.NewFromInt(10000))
		require.NoError(t, err)
	}
	return store
}

func TestCurrent(t *testing.T) {
	price := decimal.NewFromInt(100)

	tests := []struct {
		name    string
		records []ledger.Record
		want    map[string]int64
	}{
		{
			name:    "empty_history",
			records: nil,
			want:    map[string]int64{},
		},
		{
			name: "sums_multiple_buys",
			records: []ledger.Record{
				{Symbol: "AAPL", Quantity: 3, Price: price, Kind: ledger.KindBuy},
				{Symbol: "AAPL", Quantity: 4, Price: price, Kind: ledger.KindBuy},
				{Symbol: "MSFT", Quantity: 2, Price: price, Kind: ledger.KindBuy},
			},
			want: map[string]int64{"AAPL": 7, "MSFT": 2},
		},
		{
			name: "sells_reduce_position",
			records: []ledger.Record{
				{Symbol: "AAPL", Quantity: 10, Price: price, Kind: ledger.KindBuy},
				{Symbol: "AAPL", Quantity: -4, Price: price, Kind: ledger.KindSell},
			},
			want: map[string]int64{"AAPL": 6},
		},
		{
			name: "closed_position_excluded",
			records: []ledger.Record{
				{Symbol: "AAPL", Quantity: 10, Price: price, Kind: ledger.KindBuy},
				{Symbol: "AAPL", Quantity: -10, Price: price, Kind: ledger.KindSell},
			},
			want: map[string]int64{},
		},
		{
			name: "negative_history_tolerated",
			// The aggregator is descriptive; it reports whatever the log
			// says but never surfaces non-positive positions.
			records: []ledger.Record{
				{Symbol: "AAPL", Quantity: -5, Price: price, Kind: ledger.KindSell},
			},
			want: map[string]int64{},
		},
		{
			name: "deposits_ignored",
			records: []ledger.Record{
				{Quantity: 0, Price: decimal.Zero, Kind: ledger.KindDeposit},
				{Symbol: "AAPL", Quantity: 1, Price: price, Kind: ledger.KindBuy},
			},
			want: map[string]int64{"AAPL": 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := seed(t, tc.records)
			agg := NewAggregator(store)

			got, err := agg.Current(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			// Read path is idempotent.
			again, err := agg.Current(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestSharesOwned(t *testing.T) {
	price := decimal.NewFromInt(100)
	store := seed(t, []ledger.Record{
		{Symbol: "AAPL", Quantity: 3, Price: price, Kind: ledger.KindBuy},
		{Symbol: "AAPL", Quantity: 4, Price: price, Kind: ledger.KindBuy},
		{Symbol: "AAPL", Quantity: -2, Price: price, Kind: ledger.KindSell},
		{Symbol: "MSFT", Quantity: 1, Price: price, Kind: ledger.KindBuy},
	})
	agg := NewAggregator(store)

	owned, err := agg.SharesOwned(context.Background(), 1, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, int64(5), owned)

	// Untraded symbols default to zero.
	owned, err = agg.SharesOwned(context.Background(), 1, "ZZZZ")
	require.NoError(t, err)
	assert.Equal(t, int64(0), owned)
}
