package service

import "sync"

// keyLock serializes work per key so at most one transition per
// request id is in flight inside this process. The database row lock
// covers concurrent instances; this keeps a single instance from even
// queueing conflicting transactions.
type keyLock struct {
	mu    sync.Mutex
	locks map[uint]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyLock() *keyLock {
	return &keyLock{locks: make(map[uint]*lockEntry)}
}

// Lock blocks until the key is free and returns the unlock func.
func (k *keyLock) Lock(key uint) func() {
	k.mu.Lock()

	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++

	k.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
