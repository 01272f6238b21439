package engine

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

// MaxDailyPriorities caps how many tasks PlanDay will star.
const MaxDailyPriorities = 3

// PlanDay stars up to MaxDailyPriorities active tasks as today's
// priorities. With clearStars every active task is unstarred first. Ids that
// do not name an active task are reported in Missing. The planner
// achievement unlocks once at least one task has been starred.
func (e *Engine) PlanDay(ids []int, clearStars bool) (types.PlanResult, error) {
	if len(ids) > MaxDailyPriorities {
		return types.PlanResult{}, fmt.Errorf("plan day: %d tasks chosen, at most %d: %w",
			len(ids), MaxDailyPriorities, types.ErrTooManyPriorities)
	}

	if clearStars {
		for _, item := range e.activeTasks() {
			item.Task.Starred = false
		}
	}

	res := types.PlanResult{Starred: []int{}, Missing: []int{}}
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		_, task, archived := e.state.FindTask(id)
		if task == nil || archived {
			res.Missing = append(res.Missing, id)
			continue
		}
		task.Starred = true
		res.Starred = append(res.Starred, id)
	}

	if len(res.Starred) == 0 {
		res.Message = "No tasks were starred."
		return res, nil
	}
	res.OK = true
	res.Message = "Priorities starred! Good luck today."
	if e.state.UserStats.Unlock(types.AchievementPlanner) {
		res.Achievements = []string{types.AchievementPlanner}
	}
	return res, nil
}

// DeferPending moves the due date of every active task to at.
func (e *Engine) DeferPending(at time.Time) types.Outcome {
	pending := e.activeTasks()
	for _, item := range pending {
		item.Task.DueDate = types.TimestampPtr(at)
	}
	if len(pending) == 0 {
		return types.Outcome{OK: true, Message: "All tasks cleared. You're all done!"}
	}
	return types.Outcome{
		OK:      true,
		Message: fmt.Sprintf("All %d pending tasks have been rescheduled.", len(pending)),
	}
}

// TomorrowAt returns hour:00 local time on the day after now.
func (e *Engine) TomorrowAt(hour int) time.Time {
	now := e.now()
	y, m, d := now.Date()
	return time.Date(y, m, d+1, hour, 0, 0, 0, now.Location())
}
