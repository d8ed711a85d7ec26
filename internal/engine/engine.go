// Package engine validates and executes buy, sell, and deposit operations
// against a user's ledger. Each operation is a single transition: it either
// fully commits one record plus the matching balance change, or fails with
// a typed error and no state change.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jstrand/papertrader/internal/holdings"
	"github.com/jstrand/papertrader/internal/ledger"
	"github.com/jstrand/papertrader/internal/quotes"
)

// Execution reports a committed operation.
type Execution struct {
	Record  ledger.Record   `json:"record"`
	Total   decimal.Decimal `json:"total"`
	Balance decimal.Decimal `json:"balance"`
}

// Engine holds no state between calls beyond what is in the ledger store.
type Engine struct {
	store    ledger.Store
	holdings *holdings.Aggregator
	quotes   quotes.Source
	locks    *userLocks
	log      *slog.Logger
}

// New wires an engine. The quote source must be the undecorated one: a
// cached price must never back a committed trade.
func New(store ledger.Store, agg *holdings.Aggregator, src quotes.Source, log *slog.Logger) *Engine {
	return &Engine{
		store:    store,
		holdings: agg,
		quotes:   src,
		locks:    newUserLocks(),
		log:      log,
	}
}

// Buy purchases quantity shares of symbol at the current quoted price.
func (e *Engine) Buy(ctx context.Context, userID int64, symbol string, quantity int64) (Execution, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return Execution{}, err
	}
	if quantity <= 0 {
		return Execution{}, fmt.Errorf("%w: quantity must be a positive integer", ErrInvalidInput)
	}

	// The lock spans quote, validation, and commit so the price used to
	// validate the trade is the price recorded with it.
	e.locks.Lock(userID)
	defer e.locks.Unlock(userID)

	quote, err := e.lookup(ctx, symbol)
	if err != nil {
		return Execution{}, err
	}

	balance, err := e.store.Balance(ctx, userID)
	if err != nil {
		return Execution{}, wrapStore(err)
	}

	total := quote.Price.Mul(decimal.NewFromInt(quantity))
	newBalance := balance.Sub(total)
	if newBalance.IsNegative() {
		return Execution{}, fmt.Errorf("%w: need %s, have %s", ErrInsufficientFunds, total, balance)
	}

	rec := ledger.Record{
		Symbol:   symbol,
		Quantity: quantity,
		Price:    quote.Price,
		Kind:     ledger.KindBuy,
	}
	rec, err = e.store.AppendAndAdjustBalance(ctx, userID, rec, newBalance)
	if err != nil {
		return Execution{}, wrapStore(err)
	}

	e.log.Info("buy executed",
		"user_id", userID, "symbol", symbol, "quantity", quantity,
		"price", quote.Price, "total", total)

	return Execution{Record: rec, Total: total, Balance: newBalance}, nil
}

// Sell disposes quantity shares of symbol at the current quoted price.
func (e *Engine) Sell(ctx context.Context, userID int64, symbol string, quantity int64) (Execution, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return Execution{}, err
	}
	if quantity <= 0 {
		return Execution{}, fmt.Errorf("%w: quantity must be a positive integer", ErrInvalidInput)
	}

	e.locks.Lock(userID)
	defer e.locks.Unlock(userID)

	owned, err := e.holdings.SharesOwned(ctx, userID, symbol)
	if err != nil {
		return Execution{}, wrapStore(err)
	}
	if quantity > owned {
		return Execution{}, fmt.Errorf("%w: own %d, selling %d", ErrInsufficientShares, owned, quantity)
	}

	// A sell still needs a live price; if the source cannot resolve a
	// previously-traded symbol the operation fails rather than guessing.
	quote, err := e.lookup(ctx, symbol)
	if err != nil {
		return Execution{}, err
	}

	balance, err := e.store.Balance(ctx, userID)
	if err != nil {
		return Execution{}, wrapStore(err)
	}

	proceeds := quote.Price.Mul(decimal.NewFromInt(quantity))
	newBalance := balance.Add(proceeds)

	rec := ledger.Record{
		Symbol:   symbol,
		Quantity: -quantity,
		Price:    quote.Price,
		Kind:     ledger.KindSell,
	}
	rec, err = e.store.AppendAndAdjustBalance(ctx, userID, rec, newBalance)
	if err != nil {
		return Execution{}, wrapStore(err)
	}

	e.log.Info("sell executed",
		"user_id", userID, "symbol", symbol, "quantity", quantity,
		"price", quote.Price, "proceeds", proceeds)

	return Execution{Record: rec, Total: proceeds, Balance: newBalance}, nil
}

// Deposit credits cash to the user's balance and records it in the ledger
// for auditability.
func (e *Engine) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (Execution, error) {
	if !amount.IsPositive() {
		return Execution{}, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	e.locks.Lock(userID)
	defer e.locks.Unlock(userID)

	balance, err := e.store.Balance(ctx, userID)
	if err != nil {
		return Execution{}, wrapStore(err)
	}

	newBalance := balance.Add(amount)
	rec := ledger.Record{
		Quantity: 0,
		Price:    decimal.Zero,
		Kind:     ledger.KindDeposit,
	}
	rec, err = e.store.AppendAndAdjustBalance(ctx, userID, rec, newBalance)
	if err != nil {
		return Execution{}, wrapStore(err)
	}

	e.log.Info("deposit executed", "user_id", userID, "amount", amount)

	return Execution{Record: rec, Total: amount, Balance: newBalance}, nil
}

func (e *Engine) lookup(ctx context.Context, symbol string) (quotes.Quote, error) {
	quote, err := e.quotes.Lookup(ctx, symbol)
	if errors.Is(err, quotes.ErrNotFound) {
		return quotes.Quote{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}
	if err != nil {
		return quotes.Quote{}, fmt.Errorf("%w: %v", ErrQuoteUnavailable, err)
	}
	return quote, nil
}

func normalizeSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", fmt.Errorf("%w: symbol is required", ErrInvalidInput)
	}
	return symbol, nil
}

func wrapStore(err error) error {
	if errors.Is(err, ledger.ErrUserNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
