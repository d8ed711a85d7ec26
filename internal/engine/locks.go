package engine

import "sync"

// userLocks serializes ledger mutations per user without blocking users
// against each other.
type userLocks struct {
	locks    map[int64]*sync.Mutex
	mapMutex sync.RWMutex
}

func newUserLocks() *userLocks {
	return &userLocks{
		locks: make(map[int64]*sync.Mutex),
	}
}

// Lock locks the ledger for a specific user.
func (ul *userLocks) Lock(userID int64) {
	ul.mapMutex.Lock()
	if ul.locks[userID] == nil {
		ul.locks[userID] = &sync.Mutex{}
	}
	userMutex := ul.locks[userID]
	ul.mapMutex.Unlock()

	userMutex.Lock()
}

// Unlock unlocks the ledger for a specific user.
func (ul *userLocks) Unlock(userID int64) {
	ul.mapMutex.RLock()
	userMutex := ul.locks[userID]
	ul.mapMutex.RUnlock()

	if userMutex != nil {
		userMutex.Unlock()
	}
}
