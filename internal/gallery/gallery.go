// Package gallery keeps the client's local copy of previously generated
// artifacts. It is independent of the server store's lifetime: entries
// survive restarts and the user may delete them locally.
package gallery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"beadatelier/pkg/domain"
)

// Mirror is a durable, ordered list of the user's generated artifacts,
// most-recently-added first.
type Mirror struct {
	mu      sync.Mutex
	path    string
	entries []domain.Artifact
}

// New loads the mirror from path, starting empty when the file is absent.
// An empty path keeps the mirror in memory only.
func New(path string) (*Mirror, error) {
	m := &Mirror{path: path}
	if path != "" {
		if err := m.load(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Append adds a record to the front of the gallery. Appending an identifier
// that is already present moves its entry to the front instead of
// duplicating it.
func (m *Mirror) Append(a domain.Artifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(a.ID)
	m.entries = append([]domain.Artifact{a}, m.entries...)
	return m.persist()
}

// Remove deletes the entry with the given identifier; absent ids are a
// no-op.
func (m *Mirror) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.removeLocked(id) {
		return nil
	}
	return m.persist()
}

// List returns the entries most-recently-added first.
func (m *Mirror) List() []domain.Artifact {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Artifact, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *Mirror) removeLocked(id string) bool {
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Mirror) load() error {
	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read gallery: %w", err)
	}
	if err := json.Unmarshal(data, &m.entries); err != nil {
		return fmt.Errorf("parse gallery: %w", err)
	}
	return nil
}

func (m *Mirror) persist() error {
	if m.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(m.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode gallery: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create gallery dir: %w", err)
	}
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write gallery: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("replace gallery: %w", err)
	}
	return nil
}
