// Package holdings derives current share positions from the transaction
// log. It is purely descriptive: it sums whatever history it is given and
// enforces nothing.
package holdings

import (
	"context"

	"github.com/jstrand/papertrader/internal/ledger"
)

// Aggregator folds a user's transaction records into per-symbol share
// counts.
type Aggregator struct {
	store ledger.Store
}

func NewAggregator(store ledger.Store) *Aggregator {
	return &Aggregator{store: store}
}

// Current returns the user's positions, restricted to symbols whose summed
// quantity is strictly positive.
func (a *Aggregator) Current(ctx context.Context, userID int64) (map[string]int64, error) {
	records, err := a.store.Records(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	sums := make(map[string]int64)
	for _, r := range records {
		if r.Kind != ledger.KindBuy && r.Kind != ledger.KindSell {
			continue
		}
		sums[r.Symbol] += r.Quantity
	}

	for symbol, qty := range sums {
		if qty <= 0 {
			delete(sums, symbol)
		}
	}
	return sums, nil
}

// SharesOwned returns the summed signed quantity for one symbol, zero for
// symbols never traded.
func (a *Aggregator) SharesOwned(ctx context.Context, userID int64, symbol string) (int64, error) {
	records, err := a.store.Records(ctx, userID, symbol)
	if err != nil {
		return 0, err
	}

	var owned int64
	for _, r := range records {
		if r.Kind != ledger.KindBuy && r.Kind != ledger.KindSell {
			continue
		}
		owned += r.Quantity
	}
	return owned, nil
}
