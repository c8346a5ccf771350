package common

import (
	"sync"

	"github.com/google/uuid"
)

// ItemLocks serializes mutations for a single inventory item. Operations on
// different items proceed in parallel; two operations on the same item queue
// behind one another.
type ItemLocks struct {
	locks sync.Map // uuid.UUID -> *sync.Mutex
}

func NewItemLocks() *ItemLocks {
	return &ItemLocks{}
}

// Lock blocks until the per-item lock is held and returns the unlock func.
func (l *ItemLocks) Lock(itemID uuid.UUID) func() {
	mu, _ := l.locks.LoadOrStore(itemID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}
