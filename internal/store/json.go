package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

// JSONStore keeps the whole state in one indented JSON document.
type JSONStore struct {
	path   string
	logger *log.Logger
	now    clock
	closed bool
}

// NewJSONStore returns a store backed by the file at path. The file is
// created on the first Save.
func NewJSONStore(path string, logger *log.Logger) *JSONStore {
	return &JSONStore{path: path, logger: orDiscard(logger), now: time.Now}
}

// Path returns the document path.
func (s *JSONStore) Path() string { return s.path }

// Close marks the store closed. Idempotent.
func (s *JSONStore) Close() error {
	s.closed = true
	return nil
}

// Load reads the document. A missing file yields an empty state. A file that
// does not parse is copied aside to <path>.corrupt, logged, and also yields
// an empty state.
func (s *JSONStore) Load() (*types.State, error) {
	if s.closed {
		return nil, types.ErrStoreClosed
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("no store yet, starting empty", "path", s.path)
		return s.empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var state types.State
	if err := json.Unmarshal(data, &state); err != nil {
		backup := s.path + ".corrupt"
		if werr := writeAtomic(backup, data); werr != nil {
			return nil, fmt.Errorf("backing up unreadable store: %w", werr)
		}
		s.logger.Warn("store is unreadable, starting empty", "path", s.path, "backup", backup, "err", err)
		return s.empty(), nil
	}
	state.ApplyDefaults(s.now())
	s.logger.Debug("store loaded", "path", s.path, "groups", len(state.Groups), "last_task_id", state.LastTaskID)
	return &state, nil
}

func (s *JSONStore) empty() *types.State {
	state := types.NewState()
	state.ApplyDefaults(s.now())
	return state
}

// Save writes the whole state atomically.
func (s *JSONStore) Save(state *types.State) error {
	if s.closed {
		return types.ErrStoreClosed
	}
	if err := prepareSave(state); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := writeAtomic(s.path, data); err != nil {
		return err
	}
	s.logger.Debug("store saved", "path", s.path, "bytes", len(data))
	return nil
}

// writeAtomic replaces path with data using the temp-file, fsync, rename
// pattern so a crash never leaves a half-written document.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".kairu-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(format string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf(format, err)
	}

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		return fail("writing state: %w", err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return fail("writing newline: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
