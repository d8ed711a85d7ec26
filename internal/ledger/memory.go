package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// MemoryStore is an in-process Store used by tests and by dev mode. It
// mirrors the Postgres store's atomicity: a record insert and the balance
// overwrite happen under one lock.
type MemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	balances map[int64]decimal.Decimal
	records  map[int64][]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:   1,
		balances: make(map[int64]decimal.Decimal),
		records:  make(map[int64][]Record),
	}
}

// SetBalance creates or resets a user's ledger. Registration and test
// fixtures use it; the trade engine never does.
func (s *MemoryStore) SetBalance(userID int64, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[userID] = balance
}

func (s *MemoryStore) AppendAndAdjustBalance(ctx context.Context, userID int64, rec Record, newBalance decimal.Decimal) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.balances[userID]; !ok {
		return Record{}, ErrUserNotFound
	}

	rec.ID = s.nextID
	rec.UserID = userID
	rec.CreatedAt = time.Now()
	s.nextID++

	s.records[userID] = append(s.records[userID], rec)
	s.balances[userID] = newBalance

	return rec, nil
}

func (s *MemoryStore) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balance, ok := s.balances[userID]
	if !ok {
		return decimal.Decimal{}, ErrUserNotFound
	}
	return balance, nil
}

func (s *MemoryStore) Records(ctx context.Context, userID int64, symbol string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.records[userID]
	out := make([]Record, 0, len(all))
	// Stored oldest first; returned newest first like the SQL store.
	for i := len(all) - 1; i >= 0; i-- {
		if symbol != "" && all[i].Symbol != symbol {
			continue
		}
		out = append(out, all[i])
	}
	return out, nil
}
