package types

// Outcome is what a mutating engine operation reports back to the
// presentation layer. Message is plain text; styling is the caller's job.
type Outcome struct {
	// OK is false for no-op failures such as re-completing a done sub-task.
	OK      bool
	Message string

	// Task is the task the operation touched, when there is one.
	Task *Task

	// Group is the name of the task's owning group.
	Group string

	// PointsEarned is set by task completion.
	PointsEarned int

	// Rescheduled is true when a recurring task was advanced instead of archived.
	Rescheduled bool

	// Achievements lists achievement keys newly unlocked by this operation.
	Achievements []string

	// StreakSaved is true when a streak freeze was consumed; FreezesLeft is
	// the remaining count.
	StreakSaved bool
	FreezesLeft int
}

// PlanResult reports a daily planning session.
type PlanResult struct {
	Outcome
	Starred []int
	Missing []int
}

// FocusItem is a focus-list entry annotated with its group.
type FocusItem struct {
	Task  *Task  `json:"task"`
	Group string `json:"group"`
}

// SearchResult kinds.
const (
	MatchActiveTask    = "Active Task"
	MatchCompletedTask = "Completed Task"
	MatchSubTask       = "Sub-task"
)

// SearchResult is one keyword hit.
type SearchResult struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Match    string `json:"match"`
	Location string `json:"location"`
}

// HealthStats counts today's active workload.
type HealthStats struct {
	TotalToday        int `json:"total_today"`
	HighPriorityCount int `json:"high_priority_count"`
	RestTaskCount     int `json:"rest_task_count"`
}

// Summary aggregates the stats panel.
type Summary struct {
	StoreID             string   `json:"store_id"`
	Points              int      `json:"points"`
	Level               string   `json:"level"`
	Streak              int      `json:"streak"`
	StreakFreezes       int      `json:"streak_freezes"`
	CompletedToday      int      `json:"completed_today"`
	TotalCompleted      int      `json:"total_completed"`
	Achievements        []string `json:"achievements"`
	ActiveTheme         string   `json:"active_theme"`
	UnlockedThemes      []string `json:"unlocked_themes"`
	HighPriorityCounter int      `json:"high_priority_completed"`
}
