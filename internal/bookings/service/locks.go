package service

import "sync"

// classLocks serializes booking attempts per class id. Bookings against
// different classes proceed in parallel; two requests for the same class
// never interleave between the capacity check and the slot decrement.
// The lock set is bounded by the seeded catalog, so entries are never evicted.
type classLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newClassLocks() *classLocks {
	return &classLocks{
		locks: make(map[int64]*sync.Mutex),
	}
}

// Acquire locks the given class and returns the release function. The
// release must run on every exit path of the critical section.
func (c *classLocks) Acquire(classID int64) func() {
	c.mu.Lock()
	lock, ok := c.locks[classID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[classID] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
