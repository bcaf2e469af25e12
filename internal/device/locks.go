package device

import "sync"

// LockTable serializes print sessions per device. Two jobs for the
// same printer must not interleave their byte streams; jobs for
// different printers run concurrently.
type LockTable struct {
	locks map[string]*sync.Mutex
	mu    sync.Mutex
}

// NewLockTable creates an empty lock table.
func NewLockTable() *LockTable {
	return &LockTable{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the per-device lock, creating it on first use.
func (t *LockTable) Lock(deviceID string) {
	t.mu.Lock()
	l, ok := t.locks[deviceID]
	if !ok {
		l = &sync.Mutex{}
		t.locks[deviceID] = l
	}
	t.mu.Unlock()

	l.Lock()
}

// Unlock releases the per-device lock.
func (t *LockTable) Unlock(deviceID string) {
	t.mu.Lock()
	l := t.locks[deviceID]
	t.mu.Unlock()

	if l != nil {
		l.Unlock()
	}
}
