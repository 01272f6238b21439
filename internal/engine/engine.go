// Package engine applies the task, curation and gamification rules to an
// in-memory types.State. It performs no I/O; callers load the state from a
// store, run one operation and save the result.
package engine

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

// Engine owns a State for the duration of one invocation. It is not safe
// for concurrent use.
type Engine struct {
	state  *types.State
	clock  Clock
	logger *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New wraps state. A nil state starts an empty store.
func New(state *types.State, opts ...Option) *Engine {
	if state == nil {
		state = types.NewState()
	}
	e := &Engine{
		state:  state,
		clock:  SystemClock{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the state being mutated.
func (e *Engine) State() *types.State {
	return e.state
}

// Stats returns a copy of the gamification record.
func (e *Engine) Stats() types.UserStats {
	return e.state.UserStats
}

func (e *Engine) now() time.Time {
	return e.clock.Now()
}
