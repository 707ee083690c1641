// Package state persists session-defined scales and chord qualities in
// SQLite so ad hoc definitions survive between invocations. The core
// engine never touches the store; the CLI wires it around the session
// registry.
package state

import "github.com/tonality-labs/tonality/internal/registry"

// SessionStore saves and restores session catalog entries.
type SessionStore interface {
	Open(path string) error
	Close() error
	InitSchema() error

	SaveScale(record *registry.Record) error
	SaveChord(record *registry.Record) error
	ListScales() ([]*registry.Record, error)
	ListChords() ([]*registry.Record, error)
	DeleteScale(name string) error
	DeleteChord(name string) error
	Clear() error
}
