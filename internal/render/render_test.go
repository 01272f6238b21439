package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/kairu/internal/engine"
	"github.com/mesh-intelligence/kairu/pkg/types"
)

func newTestRenderer(theme string) (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, theme), &buf
}

func sampleTask() *types.Task {
	due := types.TimestampPtr(time.Date(2025, 3, 3, 10, 0, 0, 0, time.Local))
	return &types.Task{
		ID:        3,
		Name:      "Report",
		Status:    types.StatusPending,
		Priority:  types.PriorityHigh,
		DueDate:   due,
		Tags:      []string{"#work"},
		Starred:   true,
		CreatedAt: types.NewTimestamp(time.Date(2025, 1, 2, 8, 0, 0, 0, time.Local)),
		SubTasks:  []types.SubTask{{Description: "Outline", Status: types.StatusDone}},
		Log: []types.LogEntry{
			{Timestamp: types.NewTimestamp(time.Date(2025, 3, 1, 9, 30, 0, 0, time.Local)), Note: "drafted intro"},
		},
	}
}

func TestPaletteFor(t *testing.T) {
	assert.Equal(t, palettes[types.ThemeOcean], PaletteFor(types.ThemeOcean))
	assert.Equal(t, palettes[types.DefaultTheme], PaletteFor("neon"))
	for _, theme := range types.Themes {
		_, ok := palettes[theme]
		assert.True(t, ok, "theme %s has no palette", theme)
	}
}

func TestAchievementTitle(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{types.AchievementPlanner, "The Planner"},
		{types.AchievementOnARoll, "On a Roll"},
		{types.AchievementHighAchiever, "High Achiever"},
		{types.AchievementDelegator, "The Delegator"},
		{"early_bird", "Early Bird"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AchievementTitle(tt.key))
	}
}

func TestOutcome(t *testing.T) {
	r, buf := newTestRenderer(types.DefaultTheme)
	r.Outcome(types.Outcome{
		OK:           true,
		Message:      "Completed 'Report'! You earned 20 points. Task archived.",
		Achievements: []string{types.AchievementOnARoll},
		StreakSaved:  true,
		FreezesLeft:  1,
	})

	out := buf.String()
	assert.Contains(t, out, "Completed 'Report'! You earned 20 points. Task archived.")
	assert.Contains(t, out, "🏆 Achievement Unlocked: On a Roll!")
	assert.Contains(t, out, "Your streak was saved by a freeze! You have 1 left.")
	assert.NotContains(t, out, "\x1b[", "non-terminal output must be unstyled")
}

func TestTaskDetail(t *testing.T) {
	r, buf := newTestRenderer(types.ThemeForest)
	r.TaskDetail(sampleTask(), "Work", true)

	out := buf.String()
	for _, want := range []string{
		"⭐ Report", "ID: 3", "Group: Work", "Status: Pending", "Priority: High",
		"Due: 2025-03-03 10:00", "Recurring: N/A", "Tags: #work", "Details: No details.",
		"3.1 Outline", "Progress Log", "2025-03-01 09:30", "drafted intro",
	} {
		assert.Contains(t, out, want)
	}
}

func TestTaskDetailWithoutLog(t *testing.T) {
	task := sampleTask()
	task.Log = nil

	r, buf := newTestRenderer(types.DefaultTheme)
	r.TaskDetail(task, "Work", true)
	assert.Contains(t, buf.String(), "No progress log found for this task.")
}

func TestGroupTasks(t *testing.T) {
	r, buf := newTestRenderer(types.DefaultTheme)
	r.GroupTasks([]engine.GroupTasks{
		{Group: "Work", Tasks: []*types.Task{sampleTask()}},
		{Group: "Home", Empty: true},
		{Group: "Gym", Tasks: []*types.Task{}},
	})

	out := buf.String()
	assert.Contains(t, out, "-- Group: Work --")
	assert.Contains(t, out, "⭐ Report")
	assert.Contains(t, out, "3.1")
	assert.Contains(t, out, "└── Outline")
	assert.Contains(t, out, "This group has no tasks to show.")
	assert.Contains(t, out, "No tasks match the current filters.")
}

func TestGoalTasks(t *testing.T) {
	r, buf := newTestRenderer(types.DefaultTheme)
	r.GoalTasks([]engine.GoalTasks{
		{Goal: "Fitness", Tasks: []*types.Task{{ID: 1, Name: "Run"}}},
		{Goal: engine.Unassigned, Tasks: []*types.Task{{ID: 2, Name: "Laundry"}}},
	})

	out := buf.String()
	assert.Contains(t, out, "🎯 Goal: Fitness")
	assert.Contains(t, out, "- (ID 1) Run")
	assert.Contains(t, out, "🎯 Goal: Unassigned")
	assert.Contains(t, out, "- (ID 2) Laundry")
}

func TestEmptyViews(t *testing.T) {
	tests := []struct {
		name   string
		render func(r *Renderer)
		want   string
	}{
		{"groups", func(r *Renderer) { r.Groups(nil) }, "No groups defined."},
		{"goals", func(r *Renderer) { r.Goals(nil) }, "No goals defined."},
		{"completed", func(r *Renderer) { r.Completed(nil, "Work") }, "No completed tasks found in group 'Work'."},
		{"focus", func(r *Renderer) { r.Focus(nil) }, "Nothing to focus on right now. Great job!"},
		{"search", func(r *Renderer) { r.Search(nil) }, "No results found."},
		{"accomplished", func(r *Renderer) { r.Accomplished(nil) }, "No tasks were completed today."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestRenderer(types.DefaultTheme)
			tt.render(r)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestFocusShowsTimeOnly(t *testing.T) {
	r, buf := newTestRenderer(types.DefaultTheme)
	r.Focus([]types.FocusItem{{Task: sampleTask(), Group: "Work"}})

	out := buf.String()
	assert.Contains(t, out, "Today's Focus")
	assert.Contains(t, out, "10:00")
	assert.NotContains(t, out, "2025-03-03")
}

func TestSearch(t *testing.T) {
	r, buf := newTestRenderer(types.DefaultTheme)
	r.Search([]types.SearchResult{
		{Type: types.MatchSubTask, ID: "3.1", Match: "Outline", Location: "In Task 'Report' (Group: Work)"},
	})
	out := buf.String()
	assert.Contains(t, out, "3.1")
	assert.Contains(t, out, "Sub-task")
	assert.Contains(t, out, "Outline")
}

func TestHealthAdvice(t *testing.T) {
	tests := []struct {
		name  string
		stats types.HealthStats
		want  string
	}{
		{"clear day", types.HealthStats{}, "Your schedule for today is clear."},
		{"overloaded", types.HealthStats{TotalToday: 5, HighPriorityCount: 4}, "Warning: A high number of priority tasks"},
		{"breaks scheduled", types.HealthStats{TotalToday: 5, HighPriorityCount: 4, RestTaskCount: 1}, "Great job scheduling breaks!"},
		{"manageable", types.HealthStats{TotalToday: 3, HighPriorityCount: 3}, "Your schedule looks manageable."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, HealthAdvice(tt.stats), tt.want)

			r, buf := newTestRenderer(types.DefaultTheme)
			r.Health(tt.stats)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestStats(t *testing.T) {
	r, buf := newTestRenderer(types.ThemeOcean)
	r.Stats(types.Summary{
		Points:         120,
		Level:          types.LevelApprentice,
		Streak:         3,
		StreakFreezes:  2,
		CompletedToday: 1,
		TotalCompleted: 7,
		Achievements:   []string{types.AchievementPlanner, types.AchievementOnARoll},
	})

	out := buf.String()
	assert.Contains(t, out, "Total Points: 120")
	assert.Contains(t, out, "Current Level: Apprentice")
	assert.Contains(t, out, "Current Streak: 3 day(s)")
	assert.Contains(t, out, "Streak Freezes: 2 available")
	assert.Contains(t, out, "Tasks Completed (All Time): 7")
	assert.Contains(t, out, "Achievements: The Planner, On a Roll")
}

func TestThemes(t *testing.T) {
	r, buf := newTestRenderer(types.DefaultTheme)
	r.Themes(types.Summary{
		ActiveTheme:    types.ThemeForest,
		UnlockedThemes: []string{types.DefaultTheme, types.ThemeForest},
	})

	out := buf.String()
	assert.Contains(t, out, "- Default: ✅ Unlocked\n")
	assert.Contains(t, out, "- Forest: ✅ Unlocked (Active)")
	assert.Contains(t, out, "- Ocean: 🔒 (500 points)")
}

func TestStale(t *testing.T) {
	r, buf := newTestRenderer(types.DefaultTheme)
	r.Stale(&types.FocusItem{Task: sampleTask(), Group: "Work"})
	assert.Equal(t, "Task 'Report' in group 'Work' was created on 2025-01-02.\n", buf.String())
}
