// Package ledger owns persisted financial state: the append-only
// transaction log and the per-user cash balance. The store performs no
// validation; callers are responsible for checking solvency and ownership
// before committing.
package ledger

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrUserNotFound is returned when the given user id has no ledger.
var ErrUserNotFound = errors.New("ledger: user not found")

// Store is the atomic persistence primitive for the trade engine.
type Store interface {
	// AppendAndAdjustBalance inserts one record and overwrites the user's
	// cash balance in a single durable step. Either both effects are
	// visible or neither is. The returned record carries the assigned id
	// and timestamp.
	AppendAndAdjustBalance(ctx context.Context, userID int64, rec Record, newBalance decimal.Decimal) (Record, error)

	// Balance reads the user's current cash balance.
	Balance(ctx context.Context, userID int64) (decimal.Decimal, error)

	// Records returns the user's transaction log, newest first. A
	// non-empty symbol restricts the result to that symbol.
	Records(ctx context.Context, userID int64, symbol string) ([]Record, error)
}
