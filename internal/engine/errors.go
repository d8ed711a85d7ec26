package engine

import "errors"

// Every operation fails with exactly one of these kinds, always before any
// mutation. Callers translate them into user-facing responses.
var (
	// ErrInvalidInput covers malformed, missing, or non-positive numeric
	// fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownSymbol means the quote source cannot resolve the symbol.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrInsufficientFunds rejects a buy that would drive cash negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares rejects a sell of more shares than owned.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrQuoteUnavailable marks a transient quote-source failure; the
	// caller may retry, the engine does not.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	// ErrPersistence means the ledger store could not commit. No partial
	// write occurred.
	ErrPersistence = errors.New("persistence failure")
)
