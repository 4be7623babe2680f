package store

import (
	"sync"
	"time"

	"beadatelier/pkg/domain"
)

// MemoryStore keeps artifacts in-process. Safe for concurrent use; inserts
// never mutate existing entries. With a zero TTL records live for the process
// lifetime; a positive TTL starts a background sweeper that evicts expired
// records, since inline image payloads are large.
type MemoryStore struct {
	mu        sync.RWMutex
	artifacts map[string]domain.Artifact
	order     []string
	ttl       time.Duration
	stop      chan struct{}
	stopOnce  sync.Once
}

// NewMemoryStore initializes an empty in-memory store. ttl <= 0 disables
// eviction.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	m := &MemoryStore{
		artifacts: make(map[string]domain.Artifact),
		ttl:       ttl,
		stop:      make(chan struct{}),
	}
	if ttl > 0 {
		go m.sweep()
	}
	return m
}

// SaveArtifact stores a new record.
func (m *MemoryStore) SaveArtifact(a domain.Artifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.artifacts[a.ID]; !exists {
		m.order = append(m.order, a.ID)
	}
	m.artifacts[a.ID] = a
	return nil
}

// GetArtifact retrieves a record by ID.
func (m *MemoryStore) GetArtifact(id string) (domain.Artifact, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.artifacts[id]
	return a, ok, nil
}

// CountArtifacts returns the number of stored records.
func (m *MemoryStore) CountArtifacts() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.artifacts), nil
}

// Close stops the eviction sweeper, if any.
func (m *MemoryStore) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *MemoryStore) sweep() {
	ticker := time.NewTicker(m.ttl / 4)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.evictExpired(time.Now().UTC())
		}
	}
}

func (m *MemoryStore) evictExpired(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.order[:0]
	for _, id := range m.order {
		a, ok := m.artifacts[id]
		if !ok {
			continue
		}
		if now.Sub(a.CreatedAt) > m.ttl {
			delete(m.artifacts, id)
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept
}
