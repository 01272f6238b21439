package types

import "errors"

// Store persists the full State. Implementations rewrite the whole document
// on Save; there is no partial update path.
type Store interface {
	// Load returns the persisted state with missing fields defaulted. A
	// missing or unreadable store yields an empty State, not an error.
	Load() (*State, error)

	// Save replaces the persisted state with state.
	Save(state *State) error

	// Path returns the location of the backing file.
	Path() string

	// Close releases backend resources. Idempotent.
	Close() error
}

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrNilState    = errors.New("state must not be nil")
)
