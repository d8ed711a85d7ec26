package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction record.
type Kind string

const (
	KindBuy     Kind = "buy"
	KindSell    Kind = "sell"
	KindDeposit Kind = "deposit"
)

// Record is one immutable entry in a user's transaction log. Quantity is
// signed: positive for shares acquired, negative for shares disposed, zero
// for deposits. Records are never updated or deleted; corrections are new
// offsetting records.
type Record struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Symbol    string          `json:"symbol"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Kind      Kind            `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
}
