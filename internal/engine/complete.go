package engine

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

// Scoring.
const (
	basePoints   = 10
	highBonus    = 10
	mediumBonus  = 5
	onTimeBonus  = 15
	highAchieved = 10 // high-priority completions for high_achiever
	rollStreak   = 3  // streak length for on_a_roll
)

// MarkTaskDone completes an active task. Points, the high-priority counter,
// the streak and achievements are updated first. A recurring task with a due
// date then has its due date advanced and stays active; any other task is
// stamped done and moved to the end of its group's archive.
func (e *Engine) MarkTaskDone(id int) (types.Outcome, error) {
	g, task, archived := e.state.FindTask(id)
	if task == nil {
		return types.Outcome{}, fmt.Errorf("complete task %d: %w", id, types.ErrTaskNotFound)
	}
	if archived {
		return types.Outcome{}, fmt.Errorf("complete task %d: %w", id, types.ErrTaskArchived)
	}

	now := e.now()
	stats := &e.state.UserStats
	out := types.Outcome{OK: true, Task: task, Group: g.Name}

	out.PointsEarned = score(task, now)
	stats.AddPoints(out.PointsEarned)

	if task.Priority == types.PriorityHigh {
		stats.HighPriorityCompleted++
		if stats.HighPriorityCompleted >= highAchieved && stats.Unlock(types.AchievementHighAchiever) {
			out.Achievements = append(out.Achievements, types.AchievementHighAchiever)
		}
	}

	e.advanceStreak(&out, types.DateOf(now))
	if stats.Streak >= rollStreak && stats.Unlock(types.AchievementOnARoll) {
		out.Achievements = append(out.Achievements, types.AchievementOnARoll)
	}
	stats.Level = types.LevelFor(stats.Points)

	e.logger.Debug("task completed", "id", id, "points", out.PointsEarned, "streak", stats.Streak)

	if task.IsRecurring() && task.DueDate != nil {
		if next, ok := nextDue(task.DueDate.Time, *task.Recurring); ok {
			task.DueDate = types.TimestampPtr(next)
			out.Rescheduled = true
			out.Message = fmt.Sprintf("Recurring task '%s' completed! You earned %d points. Rescheduled.", task.Name, out.PointsEarned)
			return out, nil
		}
	}

	task.Status = types.StatusDone
	task.CompletedAt = types.TimestampPtr(now)
	g.Archive(id)
	out.Message = fmt.Sprintf("Completed '%s'! You earned %d points. Task archived.", task.Name, out.PointsEarned)
	return out, nil
}

// score is 10 base, +10 high or +5 medium, +15 when finished no later than due.
func score(task *types.Task, now time.Time) int {
	points := basePoints
	switch task.Priority {
	case types.PriorityHigh:
		points += highBonus
	case types.PriorityMedium:
		points += mediumBonus
	}
	if task.DueDate != nil && !now.After(task.DueDate.Time) {
		points += onTimeBonus
	}
	return points
}

// advanceStreak applies one completion on today to the streak. A gap of
// more than a day consumes a freeze when one is available.
func (e *Engine) advanceStreak(out *types.Outcome, today types.Date) {
	stats := &e.state.UserStats
	if stats.LastCompletedDate == nil {
		stats.Streak = 1
	} else {
		switch delta := stats.LastCompletedDate.DaysUntil(today); {
		case delta == 1:
			stats.Streak++
		case delta > 1 && stats.StreakFreezes > 0:
			stats.StreakFreezes--
			out.StreakSaved = true
			out.FreezesLeft = stats.StreakFreezes
		case delta > 1:
			stats.Streak = 1
		}
	}
	stats.LastCompletedDate = &today
}
