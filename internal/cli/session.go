package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kairu/internal/engine"
	"github.com/mesh-intelligence/kairu/internal/render"
	"github.com/mesh-intelligence/kairu/internal/store"
)

// session is one load/operate/save cycle against the configured store.
type session struct {
	eng *engine.Engine
	out *render.Renderer
	w   io.Writer
}

// run loads the store, hands an engine to fn, and saves the result when
// save is true and fn succeeded. Engine errors pass through unchanged so
// they map to exit code 1; store failures map to exit code 2.
func (a *app) run(cmd *cobra.Command, save bool, fn func(s *session) error) error {
	st, err := store.Open(a.cfg, a.logger)
	if err != nil {
		return sysError(err)
	}
	defer st.Close()

	state, err := st.Load()
	if err != nil {
		return sysError(err)
	}

	eng := engine.New(state, engine.WithClock(a.clock), engine.WithLogger(a.logger))
	s := &session{
		eng: eng,
		out: render.New(cmd.OutOrStdout(), state.UserStats.ActiveTheme),
		w:   cmd.OutOrStdout(),
	}
	if err := fn(s); err != nil {
		return err
	}
	if !save {
		return nil
	}
	if err := st.Save(eng.State()); err != nil {
		return sysError(err)
	}
	a.logger.Debug("state saved", "path", st.Path())
	return nil
}

// view runs a read-only session.
func (a *app) view(cmd *cobra.Command, fn func(s *session) error) error {
	return a.run(cmd, false, fn)
}

// mutate runs a session whose changes are persisted.
func (a *app) mutate(cmd *cobra.Command, fn func(s *session) error) error {
	return a.run(cmd, true, fn)
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// parseID parses a positional task id.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, userError("invalid task id %q", arg)
	}
	return id, nil
}
