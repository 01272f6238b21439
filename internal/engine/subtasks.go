package engine

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

// AddSubTask appends a pending checklist item to the task. The first sub-task
// ever created unlocks the delegator achievement.
func (e *Engine) AddSubTask(parentID int, description string) (types.Outcome, error) {
	g, task, _ := e.state.FindTask(parentID)
	if task == nil {
		return types.Outcome{}, fmt.Errorf("add sub-task to %d: %w", parentID, types.ErrTaskNotFound)
	}
	if strings.TrimSpace(description) == "" {
		return types.Outcome{}, fmt.Errorf("add sub-task to %d: %w", parentID, types.ErrInvalidName)
	}

	task.SubTasks = append(task.SubTasks, types.SubTask{
		Description: description,
		Status:      types.StatusPending,
	})
	out := types.Outcome{
		OK:      true,
		Task:    task,
		Group:   g.Name,
		Message: fmt.Sprintf("Added sub-task to '%s'.", task.Name),
	}
	if e.state.UserStats.Unlock(types.AchievementDelegator) {
		out.Achievements = []string{types.AchievementDelegator}
	}
	return out, nil
}

// MarkSubTaskDone completes the sub-task at the 1-based position. Completing
// an already-done sub-task is reported as a non-OK outcome, not an error.
func (e *Engine) MarkSubTaskDone(parentID, position int) (types.Outcome, error) {
	g, task, _ := e.state.FindTask(parentID)
	if task == nil {
		return types.Outcome{}, fmt.Errorf("complete sub-task of %d: %w", parentID, types.ErrTaskNotFound)
	}
	if position < 1 || position > len(task.SubTasks) {
		return types.Outcome{}, fmt.Errorf("complete sub-task %d.%d: %w", parentID, position, types.ErrInvalidPosition)
	}

	sub := &task.SubTasks[position-1]
	out := types.Outcome{Task: task, Group: g.Name}
	if sub.Status == types.StatusDone {
		out.Message = fmt.Sprintf("Sub-task %d for '%s' is already done.", position, task.Name)
		return out, nil
	}
	sub.Status = types.StatusDone
	out.OK = true
	out.Message = fmt.Sprintf("Completed sub-task for '%s'.", task.Name)
	return out, nil
}
