// Package quotes supplies current market prices. The trade engine treats
// every lookup as potentially slow or failing and never reuses a price
// across the validate/commit boundary of a single operation.
package quotes

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound means the symbol does not resolve to a known instrument.
	ErrNotFound = errors.New("quotes: symbol not found")
	// ErrUnavailable means the source failed or timed out; the symbol may
	// still exist.
	ErrUnavailable = errors.New("quotes: source unavailable")
)

// Quote is a current market price for one instrument.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// Source resolves symbols to current quotes.
type Source interface {
	Lookup(ctx context.Context, symbol string) (Quote, error)
}
