package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	val     []byte
	created time.Time
}

// Memory is the in-process Store backend. Expiry is lazy: stale entries
// are dropped when read, no background sweep.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an in-memory store with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if m.now().Sub(entry.created) > m.ttl {
		m.mu.Lock()
		// Re-check under the write lock: another writer may have
		// refreshed the entry since the read.
		if cur, ok := m.entries[key]; ok && m.now().Sub(cur.created) > m.ttl {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}

	return entry.val, true, nil
}

func (m *Memory) Put(_ context.Context, key string, val []byte) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{val: val, created: m.now()}
	m.mu.Unlock()
	return nil
}

// Len reports the number of entries, expired or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
