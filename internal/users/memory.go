package users

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jstrand/papertrader/internal/ledger"
)

// MemoryRepository backs dev mode and tests. When given a ledger
// MemoryStore it seeds the starting balance there, matching how the
// Postgres repository initializes cash_balance on insert.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	byName map[string]User
	ledger *ledger.MemoryStore
}

func NewMemoryRepository(store *ledger.MemoryStore) *MemoryRepository {
	return &MemoryRepository{
		nextID: 1,
		byName: make(map[string]User),
		ledger: store,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, username, passwordHash string, startingCash decimal.Decimal) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[username]; exists {
		return User{}, ErrUsernameTaken
	}

	user := User{
		ID:           r.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	r.nextID++
	r.byName[username] = user

	if r.ledger != nil {
		r.ledger.SetBalance(user.ID, startingCash)
	}

	return user, nil
}

func (r *MemoryRepository) GetByUsername(ctx context.Context, username string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byName[username]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}
