// Package valuation prices a user's holdings against the quote source. It
// is read-only and independent of the trade engine's write path; under
// concurrent writes it may observe a slightly stale committed state.
package valuation

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jstrand/papertrader/internal/holdings"
	"github.com/jstrand/papertrader/internal/ledger"
	"github.com/jstrand/papertrader/internal/quotes"
)

// Position is one priced holding. Priced is false when the quote source
// could not resolve the symbol; the position is still reported, its value
// just stays out of the total.
type Position struct {
	Symbol   string          `json:"symbol"`
	Name     string          `json:"name,omitempty"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Value    decimal.Decimal `json:"value"`
	Priced   bool            `json:"priced"`
}

// Snapshot is a point-in-time valuation of cash plus holdings. Partial is
// set when any held position could not be priced.
type Snapshot struct {
	Cash      decimal.Decimal `json:"cash"`
	Positions []Position      `json:"positions"`
	Total     decimal.Decimal `json:"total"`
	Partial   bool            `json:"partial"`
}

type Service struct {
	store    ledger.Store
	holdings *holdings.Aggregator
	quotes   quotes.Source
}

func New(store ledger.Store, agg *holdings.Aggregator, src quotes.Source) *Service {
	return &Service{store: store, holdings: agg, quotes: src}
}

// Snapshot prices the user's current holdings. A symbol the source no
// longer recognizes (delisted after being traded) yields an unpriced
// position; a transient source failure fails the whole call.
func (s *Service) Snapshot(ctx context.Context, userID int64) (Snapshot, error) {
	cash, err := s.store.Balance(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	held, err := s.holdings.Current(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	symbols := make([]string, 0, len(held))
	for symbol := range held {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	snap := Snapshot{
		Cash:      cash,
		Positions: make([]Position, 0, len(symbols)),
		Total:     cash,
	}

	for _, symbol := range symbols {
		qty := held[symbol]
		pos := Position{Symbol: symbol, Quantity: qty}

		quote, err := s.quotes.Lookup(ctx, symbol)
		switch {
		case errors.Is(err, quotes.ErrNotFound):
			snap.Partial = true
		case err != nil:
			return Snapshot{}, fmt.Errorf("pricing %s: %w", symbol, err)
		default:
			pos.Name = quote.Name
			pos.Price = quote.Price
			pos.Value = quote.Price.Mul(decimal.NewFromInt(qty))
			pos.Priced = true
			snap.Total = snap.Total.Add(pos.Value)
		}

		snap.Positions = append(snap.Positions, pos)
	}

	return snap, nil
}
