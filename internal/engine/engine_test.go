package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

// testClock is a settable clock.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.Local)
}

// newTestEngine returns an engine over an empty store with groups Work and
// Home, driven by a settable clock.
func newTestEngine(t *testing.T, now time.Time) (*Engine, *testClock) {
	t.Helper()
	clock := &testClock{now: now}
	e := New(types.NewState(), WithClock(clock))
	for _, name := range []string{"Work", "Home"} {
		_, err := e.AddGroup(name)
		require.NoError(t, err)
	}
	return e, clock
}

// addTask adds a task and returns it.
func addTask(t *testing.T, e *Engine, in NewTask) *types.Task {
	t.Helper()
	if in.Group == "" {
		in.Group = "Work"
	}
	out, err := e.AddTask(in)
	require.NoError(t, err)
	require.NotNil(t, out.Task)
	return out.Task
}

func TestNewDefaults(t *testing.T) {
	e := New(nil)
	require.NotNil(t, e.State())
	require.Empty(t, e.Groups())
	require.Equal(t, types.DefaultTheme, e.Stats().ActiveTheme)
}
