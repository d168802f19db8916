// Package store provides persistence for backforth definitions.
//
// A definition is stored as source text that rebinds the word when it is
// evaluated. Every change to a definition is kept as a new version.
package store

// Store is the interface for definition persistence.
type Store interface {
	// Get retrieves the latest source for name. ok is false if not found.
	Get(name string) (source string, ok bool, err error)
	// Put stores source for name. Storing the current source again is a no-op.
	Put(name, source string) error
	// Delete removes every version of name.
	Delete(name string) error
	// Names lists stored names in lexical order.
	Names() ([]string, error)
	// Close releases resources.
	Close() error
}

// VersionEntry represents a single version of a persisted definition.
type VersionEntry struct {
	Version int    `json:"version" yaml:"version"`
	Source  string `json:"source" yaml:"source"`
	Ts      string `json:"ts" yaml:"ts"`
}

// HistoryStore extends Store with version history queries.
type HistoryStore interface {
	// GetHistory returns versions of name, newest first. A limit of 0
	// returns every version.
	GetHistory(name string, limit int) ([]VersionEntry, error)
}
