package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

func ptr(s string) *string { return &s }

func TestAddTask(t *testing.T) {
	now := at(2025, 3, 1, 12, 0)
	e, _ := newTestEngine(t, now)
	_, err := e.AddGoal("Career", nil)
	require.NoError(t, err)

	out, err := e.AddTask(NewTask{
		Group:     "work",
		Name:      "Report",
		Details:   ptr("Q1 numbers"),
		Priority:  types.PriorityHigh,
		Due:       "2025-03-05 17:00",
		Recurring: types.RecurWeekly,
		Tags:      "finance, #q1,,finance",
		Goal:      "career",
	})
	require.NoError(t, err)
	assert.Equal(t, "Added task 'Report' (ID: 1) to group 'Work'.", out.Message)
	assert.Equal(t, "Work", out.Group)

	task := out.Task
	assert.Equal(t, 1, task.ID)
	assert.Equal(t, types.StatusPending, task.Status)
	assert.Equal(t, []string{"#finance", "#q1"}, task.Tags)
	assert.Equal(t, "2025-03-05T17:00:00", task.DueDate.String())
	assert.Equal(t, types.RecurWeekly, *task.Recurring)
	assert.Equal(t, "Career", task.GoalName(), "goal link uses the stored goal name")
	assert.True(t, now.Equal(task.CreatedAt.Time))
	assert.Empty(t, task.SubTasks)
	assert.Empty(t, task.Log)

	second := addTask(t, e, NewTask{Name: "Standup"})
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, types.PriorityMedium, second.Priority)
	assert.Nil(t, second.DueDate)
	assert.Equal(t, []string{}, second.Tags)
}

func TestAddTaskRejects(t *testing.T) {
	e, _ := newTestEngine(t, at(2025, 3, 1, 12, 0))
	addTask(t, e, NewTask{Name: "Report"})

	tests := []struct {
		name     string
		in       NewTask
		wantErr  error
		category error
	}{
		{"unknown group", NewTask{Group: "Garden", Name: "x"}, types.ErrGroupNotFound, types.ErrNotFound},
		{"empty name", NewTask{Group: "Work", Name: " "}, types.ErrInvalidName, types.ErrValidation},
		{"date without time", NewTask{Group: "Work", Name: "x", Due: "2025-03-05"}, types.ErrInvalidDueDate, types.ErrValidation},
		{"iso due", NewTask{Group: "Work", Name: "x", Due: "2025-03-05T10:00"}, types.ErrInvalidDueDate, types.ErrValidation},
		{"bad priority", NewTask{Group: "Work", Name: "x", Priority: "urgent"}, types.ErrInvalidPriority, types.ErrValidation},
		{"bad recurrence", NewTask{Group: "Work", Name: "x", Recurring: "yearly"}, types.ErrInvalidRecurrence, types.ErrValidation},
		{"duplicate name ignoring case", NewTask{Group: "Work", Name: "REPORT"}, types.ErrTaskExists, types.ErrDuplicate},
		{"unknown goal", NewTask{Group: "Work", Name: "x", Goal: "Fame"}, types.ErrGoalNotFound, types.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.AddTask(tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.category)
		})
	}
	assert.Equal(t, 1, e.State().LastTaskID, "failed adds must not consume ids")
}

func TestAddTaskSameNameOtherGroup(t *testing.T) {
	e, _ := newTestEngine(t, at(2025, 3, 1, 12, 0))
	addTask(t, e, NewTask{Group: "Work", Name: "Clean"})
	addTask(t, e, NewTask{Group: "Home", Name: "Clean"})
}

func TestAddTaskNameFreedByArchival(t *testing.T) {
	e, _ := newTestEngine(t, at(2025, 3, 1, 12, 0))
	task := addTask(t, e, NewTask{Name: "Report"})
	_, err := e.MarkTaskDone(task.ID)
	require.NoError(t, err)

	again := addTask(t, e, NewTask{Name: "Report"})
	assert.Equal(t, 2, again.ID)
}

func TestIDsNeverReused(t *testing.T) {
	e, _ := newTestEngine(t, at(2025, 3, 1, 12, 0))
	addTask(t, e, NewTask{Name: "a"})
	b := addTask(t, e, NewTask{Name: "b"})

	_, err := e.DeleteTask(b.ID)
	require.NoError(t, err)

	c := addTask(t, e, NewTask{Name: "c"})
	assert.Equal(t, 3, c.ID)
}

func TestEditTask(t *testing.T) {
	e, _ := newTestEngine(t, at(2025, 3, 1, 12, 0))
	_, err := e.AddGoal("Health", nil)
	require.NoError(t, err)
	task := addTask(t, e, NewTask{Name: "Run", Goal: "Health", Due: "2025-03-02 07:00"})

	out, err := e.EditTask(task.ID, TaskEdit{
		Name:     ptr("Run 5k"),
		Details:  ptr("easy pace"),
		Priority: ptr(types.PriorityHigh),
		Tags:     ptr("outdoor"),
		Goal:     ptr("None"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Successfully updated task #1.", out.Message)
	assert.Equal(t, "Run 5k", task.Name)
	assert.Equal(t, "easy pace", task.DetailsText())
	assert.Equal(t, types.PriorityHigh, task.Priority)
	assert.Equal(t, []string{"#outdoor"}, task.Tags)
	assert.Nil(t, task.Goal)
	assert.Equal(t, "2025-03-02T07:00:00", task.DueDate.String(), "unset fields are untouched")

	_, err = e.EditTask(task.ID, TaskEdit{Due: ptr("none"), Recurring: ptr(types.RecurDaily)})
	require.NoError(t, err)
	assert.Nil(t, task.DueDate)
	assert.True(t, task.IsRecurring())
}

func TestEditTaskIsAtomic(t *testing.T) {
	e, _ := newTestEngine(t, at(2025, 3, 1, 12, 0))
	task := addTask(t, e, NewTask{Name: "Run"})

	tests := []struct {
		name    string
		edit    TaskEdit
		wantErr error
	}{
		{"bad priority", TaskEdit{Name: ptr("Walk"), Priority: ptr("asap")}, types.ErrInvalidPriority},
		{"bad due", TaskEdit{Name: ptr("Walk"), Due: ptr("tomorrow")}, types.ErrInvalidDueDate},
		{"bad recurrence", TaskEdit{Name: ptr("Walk"), Recurring: ptr("hourly")}, types.ErrInvalidRecurrence},
		{"unknown goal", TaskEdit{Name: ptr("Walk"), Goal: ptr("Fame")}, types.ErrGoalNotFound},
		{"empty name", TaskEdit{Name: ptr(""), Tags: ptr("x")}, types.ErrInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.EditTask(task.ID, tt.edit)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, "Run", task.Name)
			assert.Equal(t, []string{}, task.Tags)
		})
	}

	_, err := e.EditTask(42, TaskEdit{Name: ptr("x")})
	assert.ErrorIs(t, err, types.ErrTaskNotFound)
}

func TestEditArchivedTask(t *testing.T) {
	e, _ := newTestEngine(t, at(2025, 3, 1, 12, 0))
	task := addTask(t, e, NewTask{Name: "Old"})
	_, err := e.MarkTaskDone(task.ID)
	require.NoError(t, err)

	_, err = e.EditTask(task.ID, TaskEdit{Details: ptr("notes")})
	require.NoError(t, err)
	assert.Equal(t, "notes", task.DetailsText())
}

func TestDeleteTask(t *testing.T) {
	e, _ := newTestEngine(t, at(2025, 3, 1, 12, 0))
	active := addTask(t, e, NewTask{Name: "active"})
	archived := addTask(t, e, NewTask{Name: "archived"})
	_, err := e.MarkTaskDone(archived.ID)
	require.NoError(t, err)

	out, err := e.DeleteTask(active.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deleted task: 'active' from group 'Work'.", out.Message)

	_, err = e.DeleteTask(archived.ID)
	require.NoError(t, err)

	g := e.State().FindGroup("Work")
	assert.Empty(t, g.Tasks)
	assert.Empty(t, g.CompletedTasks)

	_, err = e.DeleteTask(active.ID)
	assert.ErrorIs(t, err, types.ErrTaskNotFound)
}

func TestLogProgress(t *testing.T) {
	now := at(2025, 3, 1, 12, 30)
	e, _ := newTestEngine(t, now)
	task := addTask(t, e, NewTask{Name: "Thesis"})

	_, err := e.LogProgress(task.ID, "outline done")
	require.NoError(t, err)
	_, err = e.LogProgress(task.ID, "chapter 1")
	require.NoError(t, err)

	require.Len(t, task.Log, 2)
	assert.Equal(t, "outline done", task.Log[0].Note)
	assert.True(t, now.Equal(task.Log[0].Timestamp.Time))

	_, err = e.LogProgress(7, "x")
	assert.ErrorIs(t, err, types.ErrTaskNotFound)
}

func TestToggleStar(t *testing.T) {
	e, _ := newTestEngine(t, at(2025, 3, 1, 12, 0))
	task := addTask(t, e, NewTask{Group: "Home", Name: "Plants"})

	out, err := e.ToggleStar(task.ID, true)
	require.NoError(t, err)
	assert.True(t, task.Starred)
	assert.Equal(t, "Starred task 'Plants' in group 'Home'.", out.Message)

	out, err = e.ToggleStar(task.ID, false)
	require.NoError(t, err)
	assert.False(t, task.Starred)
	assert.Equal(t, "Unstarred task 'Plants' in group 'Home'.", out.Message)

	_, err = e.ToggleStar(5, true)
	assert.ErrorIs(t, err, types.ErrTaskNotFound)
}

func TestTaskLookup(t *testing.T) {
	e, _ := newTestEngine(t, at(2025, 3, 1, 12, 0))
	task := addTask(t, e, NewTask{Group: "Home", Name: "Plants"})

	got, group, err := e.Task(task.ID)
	require.NoError(t, err)
	assert.Same(t, task, got)
	assert.Equal(t, "Home", group)

	_, _, err = e.Task(99)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
