package engine

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

// clearValue unlinks a goal or clears a due date or recurrence on edit.
const clearValue = "none"

// NewTask carries the fields accepted by AddTask. Empty strings mean unset;
// Priority defaults to medium and Tags is a comma-separated list.
type NewTask struct {
	Group     string
	Name      string
	Details   *string
	Priority  string
	Due       string
	Recurring string
	Tags      string
	Goal      string
}

// TaskEdit names the fields EditTask should change. Nil fields are left
// alone. Goal, Due and Recurring accept "none" to clear the value.
type TaskEdit struct {
	Name      *string
	Details   *string
	Priority  *string
	Due       *string
	Recurring *string
	Tags      *string
	Goal      *string
}

// AddTask validates in and appends a new pending task to its group.
func (e *Engine) AddTask(in NewTask) (types.Outcome, error) {
	g := e.state.FindGroup(in.Group)
	if g == nil {
		return types.Outcome{}, fmt.Errorf("add task to %q: %w", in.Group, types.ErrGroupNotFound)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return types.Outcome{}, fmt.Errorf("add task: %w", types.ErrInvalidName)
	}
	priority := in.Priority
	if priority == "" {
		priority = types.PriorityMedium
	}
	if err := types.ValidatePriority(priority); err != nil {
		return types.Outcome{}, fmt.Errorf("add task: %w", err)
	}
	var due *types.Timestamp
	if in.Due != "" {
		ts, err := types.ParseDue(in.Due)
		if err != nil {
			return types.Outcome{}, fmt.Errorf("add task: %w", err)
		}
		due = &ts
	}
	var recurring *string
	if in.Recurring != "" {
		if err := types.ValidateRecurrence(in.Recurring); err != nil {
			return types.Outcome{}, fmt.Errorf("add task: %w", err)
		}
		r := in.Recurring
		recurring = &r
	}
	if g.ActiveByName(name) != nil {
		return types.Outcome{}, fmt.Errorf("add task %q to group %q: %w", name, g.Name, types.ErrTaskExists)
	}
	var goal *string
	if in.Goal != "" {
		gl := e.state.FindGoal(in.Goal)
		if gl == nil {
			return types.Outcome{}, fmt.Errorf("add task: goal %q: %w", in.Goal, types.ErrGoalNotFound)
		}
		goal = &gl.Name
	}

	task := &types.Task{
		ID:        e.state.NextTaskID(),
		Name:      name,
		Details:   in.Details,
		Status:    types.StatusPending,
		Priority:  priority,
		DueDate:   due,
		Recurring: recurring,
		Tags:      types.ParseTags(in.Tags),
		SubTasks:  []types.SubTask{},
		CreatedAt: types.NewTimestamp(e.now()),
		Log:       []types.LogEntry{},
		Goal:      goal,
	}
	g.Tasks = append(g.Tasks, task)
	e.logger.Debug("task added", "id", task.ID, "group", g.Name)

	return types.Outcome{
		OK:      true,
		Task:    task,
		Group:   g.Name,
		Message: fmt.Sprintf("Added task '%s' (ID: %d) to group '%s'.", name, task.ID, g.Name),
	}, nil
}

// Task returns the task with the given id and the name of its group.
func (e *Engine) Task(id int) (*types.Task, string, error) {
	g, t, _ := e.state.FindTask(id)
	if t == nil {
		return nil, "", fmt.Errorf("task %d: %w", id, types.ErrTaskNotFound)
	}
	return t, g.Name, nil
}

// EditTask applies the non-nil fields of edit to the task, active or
// archived. Every field is validated first; on error nothing changes.
func (e *Engine) EditTask(id int, edit TaskEdit) (types.Outcome, error) {
	g, task, _ := e.state.FindTask(id)
	if task == nil {
		return types.Outcome{}, fmt.Errorf("edit task %d: %w", id, types.ErrTaskNotFound)
	}

	next := *task
	if edit.Name != nil {
		name := strings.TrimSpace(*edit.Name)
		if name == "" {
			return types.Outcome{}, fmt.Errorf("edit task %d: %w", id, types.ErrInvalidName)
		}
		next.Name = name
	}
	if edit.Details != nil {
		d := *edit.Details
		next.Details = &d
	}
	if edit.Priority != nil {
		if err := types.ValidatePriority(*edit.Priority); err != nil {
			return types.Outcome{}, fmt.Errorf("edit task %d: %w", id, err)
		}
		next.Priority = *edit.Priority
	}
	if edit.Due != nil {
		if isClear(*edit.Due) {
			next.DueDate = nil
		} else {
			ts, err := types.ParseDue(*edit.Due)
			if err != nil {
				return types.Outcome{}, fmt.Errorf("edit task %d: %w", id, err)
			}
			next.DueDate = &ts
		}
	}
	if edit.Recurring != nil {
		if isClear(*edit.Recurring) {
			next.Recurring = nil
		} else {
			if err := types.ValidateRecurrence(*edit.Recurring); err != nil {
				return types.Outcome{}, fmt.Errorf("edit task %d: %w", id, err)
			}
			r := *edit.Recurring
			next.Recurring = &r
		}
	}
	if edit.Tags != nil {
		next.Tags = types.ParseTags(*edit.Tags)
	}
	if edit.Goal != nil {
		if isClear(*edit.Goal) {
			next.Goal = nil
		} else {
			gl := e.state.FindGoal(*edit.Goal)
			if gl == nil {
				return types.Outcome{}, fmt.Errorf("edit task %d: goal %q: %w", id, *edit.Goal, types.ErrGoalNotFound)
			}
			next.Goal = &gl.Name
		}
	}

	*task = next
	return types.Outcome{
		OK:      true,
		Task:    task,
		Group:   g.Name,
		Message: fmt.Sprintf("Successfully updated task #%d.", id),
	}, nil
}

func isClear(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), clearValue)
}

// DeleteTask removes the task from whichever list holds it.
func (e *Engine) DeleteTask(id int) (types.Outcome, error) {
	g, task, _ := e.state.FindTask(id)
	if task == nil {
		return types.Outcome{}, fmt.Errorf("delete task %d: %w", id, types.ErrTaskNotFound)
	}
	g.Remove(id)
	e.logger.Debug("task deleted", "id", id, "group", g.Name)
	return types.Outcome{
		OK:      true,
		Task:    task,
		Group:   g.Name,
		Message: fmt.Sprintf("Deleted task: '%s' from group '%s'.", task.Name, g.Name),
	}, nil
}

// LogProgress appends a timestamped note to the task's log.
func (e *Engine) LogProgress(id int, note string) (types.Outcome, error) {
	g, task, _ := e.state.FindTask(id)
	if task == nil {
		return types.Outcome{}, fmt.Errorf("log progress on task %d: %w", id, types.ErrTaskNotFound)
	}
	task.Log = append(task.Log, types.LogEntry{
		Timestamp: types.NewTimestamp(e.now()),
		Note:      note,
	})
	return types.Outcome{
		OK:      true,
		Task:    task,
		Group:   g.Name,
		Message: fmt.Sprintf("Progress logged for task #%d: '%s'.", id, task.Name),
	}, nil
}

// ToggleStar sets or clears the starred flag.
func (e *Engine) ToggleStar(id int, starred bool) (types.Outcome, error) {
	g, task, _ := e.state.FindTask(id)
	if task == nil {
		return types.Outcome{}, fmt.Errorf("star task %d: %w", id, types.ErrTaskNotFound)
	}
	task.Starred = starred
	verb := "Unstarred"
	if starred {
		verb = "Starred"
	}
	return types.Outcome{
		OK:      true,
		Task:    task,
		Group:   g.Name,
		Message: fmt.Sprintf("%s task '%s' in group '%s'.", verb, task.Name, g.Name),
	}, nil
}
