// Package concurrency serializes work per contest.
package concurrency

import (
	"sync"

	"github.com/google/uuid"
)

type contestLock struct {
	mu   sync.Mutex
	refs int
}

// LockManager hands out one mutex per contest. A contest's entry lives only
// while someone holds or waits for it, so finished contests cost nothing.
type LockManager struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*contestLock
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[uuid.UUID]*contestLock)}
}

// Lock acquires the contest's mutex and returns the matching unlock
func (lm *LockManager) Lock(contestID uuid.UUID) func() {
	lm.mu.Lock()
	l, ok := lm.locks[contestID]
	if !ok {
		l = &contestLock{}
		lm.locks[contestID] = l
	}
	l.refs++
	lm.mu.Unlock()

	l.mu.Lock()
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()
			lm.release(contestID, l)
		})
	}
}

func (lm *LockManager) release(contestID uuid.UUID, l *contestLock) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(lm.locks, contestID)
	}
}

func (lm *LockManager) tracked() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}
