package store

import (
	"slices"
	"sync"
	"time"
)

// Memory is an in-memory store.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]VersionEntry // oldest first
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string][]VersionEntry),
	}
}

// Get retrieves the latest source by name.
func (m *Memory) Get(name string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	versions := m.data[name]
	if len(versions) == 0 {
		return "", false, nil
	}
	return versions[len(versions)-1].Source, true, nil
}

// Put stores a new version of name unless it matches the latest one.
func (m *Memory) Put(name, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	versions := m.data[name]
	if n := len(versions); n > 0 && versions[n-1].Source == source {
		return nil
	}
	m.data[name] = append(versions, VersionEntry{
		Version: len(versions) + 1,
		Source:  source,
		Ts:      time.Now().UTC().Format(time.RFC3339),
	})
	return nil
}

// Delete removes a definition by name.
func (m *Memory) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, name)
	return nil
}

// Names lists stored names.
func (m *Memory) Names() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// GetHistory returns versions of name, newest first.
func (m *Memory) GetHistory(name string, limit int) ([]VersionEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	history := slices.Clone(m.data[name])
	slices.Reverse(history)
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}
