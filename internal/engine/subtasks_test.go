package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

func TestAddSubTaskUnlocksDelegatorOnce(t *testing.T) {
	e, _ := newTestEngine(t, at(2025, 3, 1, 12, 0))
	task := addTask(t, e, NewTask{Name: "Move house"})

	out, err := e.AddSubTask(task.ID, "Book van")
	require.NoError(t, err)
	assert.Equal(t, "Added sub-task to 'Move house'.", out.Message)
	assert.Equal(t, []string{types.AchievementDelegator}, out.Achievements)

	out, err = e.AddSubTask(task.ID, "Pack books")
	require.NoError(t, err)
	assert.Empty(t, out.Achievements)

	require.Len(t, task.SubTasks, 2)
	assert.Equal(t, types.SubTask{Description: "Pack books", Status: types.StatusPending}, task.SubTasks[1])

	_, err = e.AddSubTask(99, "x")
	assert.ErrorIs(t, err, types.ErrTaskNotFound)
	_, err = e.AddSubTask(task.ID, "")
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestMarkSubTaskDone(t *testing.T) {
	e, _ := newTestEngine(t, at(2025, 3, 1, 12, 0))
	task := addTask(t, e, NewTask{Name: "Move house"})
	_, err := e.AddSubTask(task.ID, "Book van")
	require.NoError(t, err)

	out, err := e.MarkSubTaskDone(task.ID, 1)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, types.StatusDone, task.SubTasks[0].Status)

	out, err = e.MarkSubTaskDone(task.ID, 1)
	require.NoError(t, err, "re-completing is a no-op, not an error")
	assert.False(t, out.OK)
	assert.Equal(t, "Sub-task 1 for 'Move house' is already done.", out.Message)

	for _, pos := range []int{0, 2, -1} {
		_, err = e.MarkSubTaskDone(task.ID, pos)
		assert.ErrorIs(t, err, types.ErrInvalidPosition)
	}
	_, err = e.MarkSubTaskDone(42, 1)
	assert.ErrorIs(t, err, types.ErrTaskNotFound)

	assert.Equal(t, types.StatusPending, task.Status, "sub-tasks never complete the parent")
}
