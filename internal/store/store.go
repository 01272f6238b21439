// Package store persists kairu state. Two backends share the types.Store
// contract: a single JSON document (the default, compatible with files
// written by earlier versions) and a normalised SQLite database.
package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

// File names inside the data directory.
const (
	JSONFileName   = "tasks.json"
	SQLiteFileName = "kairu.db"
)

// Open validates cfg, creates the data directory and returns the store for
// cfg.Backend. A nil logger discards output.
func Open(cfg types.Config, logger *log.Logger) (types.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger = orDiscard(logger)

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	switch cfg.Backend {
	case types.BackendSQLite:
		return OpenSQLite(filepath.Join(dataDir, SQLiteFileName), logger)
	default:
		return NewJSONStore(filepath.Join(dataDir, JSONFileName), logger), nil
	}
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}

// generateUUID returns a UUID v7 store id, falling back to v4.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// prepareSave stamps a store id on first save.
func prepareSave(state *types.State) error {
	if state == nil {
		return types.ErrNilState
	}
	if state.StoreID == "" {
		state.StoreID = generateUUID()
	}
	return nil
}

// clock is swapped in tests so defaulted timestamps are predictable.
type clock func() time.Time
