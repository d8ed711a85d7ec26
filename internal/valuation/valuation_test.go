package valuation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstrand/papertrader/internal/holdings"
	"github.com/jstrand/papertrader/internal/ledger"
	"github.com/jstrand/papertrader/internal/quotes"
)

type stubQuotes struct {
	prices map[string]decimal.Decimal
	err    error
}

func (s *stubQuotes) Lookup(ctx context.Context, symbol string) (quotes.Quote, error) {
	if s.err != nil {
		return quotes.Quote{}, s.err
	}
	price, ok := s.prices[symbol]
	if !ok {
		return quotes.Quote{}, quotes.ErrNotFound
	}
	return quotes.Quote{Symbol: symbol, Name: symbol + " Inc.", Price: price}, nil
}

func seedStore(t *testing.T, cash decimal.Decimal, positions map[string]int64) *ledger.MemoryStore {
	t.Helper()
	store := ledger.NewMemoryStore()
	store.SetBalance(1, cash)
	for symbol, qty := range positions {
		_, err := store.AppendAndAdjustBalance(context.Background(), 1, ledger.Record{
			Symbol:   symbol,
			Quantity: qty,
			Price:    decimal.NewFromInt(1),
			Kind:     ledger.KindBuy,
		}, cash)
		require.NoError(t, err)
	}
	return store
}

func TestSnapshot(t *testing.T) {
	store := seedStore(t, decimal.NewFromInt(1000), map[string]int64{"AAPL": 10, "MSFT": 2})
	src := &stubQuotes{prices: map[string]decimal.Decimal{
		"AAPL": decimal.NewFromInt(100),
		"MSFT": decimal.NewFromInt(300),
	}}
	svc := New(store, holdings.NewAggregator(store), src)

	snap, err := svc.Snapshot(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, snap.Cash.Equal(decimal.NewFromInt(1000)))
	assert.False(t, snap.Partial)
	require.Len(t, snap.Positions, 2)

	// Positions are sorted by symbol.
	assert.Equal(t, "AAPL", snap.Positions[0].Symbol)
	assert.True(t, snap.Positions[0].Value.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "MSFT", snap.Positions[1].Symbol)
	assert.True(t, snap.Positions[1].Value.Equal(decimal.NewFromInt(600)))

	// total = cash + sum(quantity * price)
	assert.True(t, snap.Total.Equal(decimal.NewFromInt(2600)), "total = %s", snap.Total)
}

func TestSnapshot_EmptyPortfolio(t *testing.T) {
	store := seedStore(t, decimal.NewFromInt(500), nil)
	svc := New(store, holdings.NewAggregator(store), &stubQuotes{})

	snap, err := svc.Snapshot(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, snap.Positions)
	assert.True(t, snap.Total.Equal(decimal.NewFromInt(500)))
}

func TestSnapshot_PartialWhenSymbolDelisted(t *testing.T) {
	store := seedStore(t, decimal.NewFromInt(1000), map[string]int64{"AAPL": 10, "GONE": 5})
	src := &stubQuotes{prices: map[string]decimal.Decimal{
		"AAPL": decimal.NewFromInt(100),
	}}
	svc := New(store, holdings.NewAggregator(store), src)

	snap, err := svc.Snapshot(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, snap.Partial)
	require.Len(t, snap.Positions, 2)

	var gone Position
	for _, p := range snap.Positions {
		if p.Symbol == "GONE" {
			gone = p
		}
	}
	assert.Equal(t, int64(5), gone.Quantity)
	assert.False(t, gone.Priced)

	// The unpriced position stays out of the total.
	assert.True(t, snap.Total.Equal(decimal.NewFromInt(2000)), "total = %s", snap.Total)
}

func TestSnapshot_SourceUnavailable(t *testing.T) {
	store := seedStore(t, decimal.NewFromInt(1000), map[string]int64{"AAPL": 10})
	svc := New(store, holdings.NewAggregator(store), &stubQuotes{err: quotes.ErrUnavailable})

	_, err := svc.Snapshot(context.Background(), 1)
	assert.ErrorIs(t, err, quotes.ErrUnavailable)
}

func TestSnapshot_Idempotent(t *testing.T) {
	store := seedStore(t, decimal.NewFromInt(1000), map[string]int64{"AAPL": 10})
	src := &stubQuotes{prices: map[string]decimal.Decimal{"AAPL": decimal.NewFromInt(100)}}
	svc := New(store, holdings.NewAggregator(store), src)

	first, err := svc.Snapshot(context.Background(), 1)
	require.NoError(t, err)
	second, err := svc.Snapshot(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
