package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

// AddGroup creates an empty group. Names are unique ignoring case.
func (e *Engine) AddGroup(name string) (types.Outcome, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Outcome{}, fmt.Errorf("add group: %w", types.ErrInvalidName)
	}
	if e.state.FindGroup(name) != nil {
		return types.Outcome{}, fmt.Errorf("add group %q: %w", name, types.ErrGroupExists)
	}

	e.state.Groups = append(e.state.Groups, &types.Group{
		Name:           name,
		Tasks:          []*types.Task{},
		CompletedTasks: []*types.Task{},
	})
	e.logger.Debug("group added", "group", name)
	return types.Outcome{
		OK:      true,
		Group:   name,
		Message: fmt.Sprintf("Added new group: '%s'", name),
	}, nil
}

// Groups returns every group in creation order.
func (e *Engine) Groups() []*types.Group {
	return e.state.Groups
}

// AddGoal creates a goal tasks can link to. Names are unique ignoring case.
func (e *Engine) AddGoal(name string, description *string) (types.Outcome, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Outcome{}, fmt.Errorf("add goal: %w", types.ErrInvalidName)
	}
	if e.state.FindGoal(name) != nil {
		return types.Outcome{}, fmt.Errorf("add goal %q: %w", name, types.ErrGoalExists)
	}

	e.state.Goals = append(e.state.Goals, &types.Goal{Name: name, Description: description})
	return types.Outcome{OK: true, Message: fmt.Sprintf("Added new goal: '%s'", name)}, nil
}

// Goals returns every goal in creation order.
func (e *Engine) Goals() []*types.Goal {
	return e.state.Goals
}

// GroupOf returns the name of the group owning task id.
func (e *Engine) GroupOf(id int) (string, error) {
	g, t, _ := e.state.FindTask(id)
	if t == nil {
		return "", fmt.Errorf("task %d: %w", id, types.ErrTaskNotFound)
	}
	return g.Name, nil
}

// CompletedForGroup returns the group's archived tasks, most recently
// completed first. Tasks without a completion time sort last.
func (e *Engine) CompletedForGroup(name string) ([]*types.Task, error) {
	g := e.state.FindGroup(name)
	if g == nil {
		return nil, fmt.Errorf("group %q: %w", name, types.ErrGroupNotFound)
	}

	out := slices.Clone(g.CompletedTasks)
	slices.SortStableFunc(out, func(a, b *types.Task) int {
		switch {
		case a.CompletedAt == nil && b.CompletedAt == nil:
			return 0
		case a.CompletedAt == nil:
			return 1
		case b.CompletedAt == nil:
			return -1
		}
		return b.CompletedAt.Compare(a.CompletedAt.Time)
	})
	return out, nil
}
