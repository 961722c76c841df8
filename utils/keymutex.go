package utils

import "sync"

// KeyMutex provides per-key mutual exclusion. Confirm/cancel/webhook calls
// racing on the same record id must observe a consistent prior state, so each
// service wraps its record-level transitions in a key lock.
type KeyMutex struct {
	locks sync.Map // key -> *sync.Mutex
}

// Lock acquires the mutex for key, creating it on first use.
func (m *KeyMutex) Lock(key string) {
	mu, _ := m.locks.LoadOrStore(key, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
}

// Unlock releases the mutex for key.
func (m *KeyMutex) Unlock(key string) {
	mu, ok := m.locks.Load(key)
	if !ok {
		return
	}
	mu.(*sync.Mutex).Unlock()
}
