package store

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

func newTestJSONStore(t *testing.T) (*JSONStore, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	s := NewJSONStore(filepath.Join(t.TempDir(), JSONFileName), logger)
	s.now = func() time.Time { return fixedNow }
	return s, &buf
}

func TestJSONLoadCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated", `{"last_task_id": 3, "groups": [`},
		{"not json", "hello"},
		{"wrong shape", `{"groups": "Work"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, logs := newTestJSONStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.content), 0o644))

			state, err := s.Load()
			require.NoError(t, err)
			assert.Equal(t, 0, state.LastTaskID)
			assert.Empty(t, state.Groups)
			assert.Contains(t, logs.String(), "store is unreadable")

			backup, err := os.ReadFile(s.Path() + ".corrupt")
			require.NoError(t, err)
			assert.Equal(t, tt.content+"\n", string(backup), "original bytes are kept aside")
		})
	}
}

func TestJSONLoadLegacyDocument(t *testing.T) {
	s, _ := newTestJSONStore(t)
	legacy := `{
    "last_task_id": 3,
    "groups": [
        {
            "name": "Work",
            "tasks": [
                {"id": 3, "name": "Report", "details": null, "status": "pending",
                 "priority": "high", "due_date": "2025-01-01T09:00:00", "recurring": null,
                 "tags": ["#finance"], "sub_tasks": [{"description": "draft", "status": "pending"}],
                 "starred": false, "created_at": "2024-12-20T10:11:12.345678",
                 "log": [], "goal": null, "completed_at": null}
            ],
            "completed_tasks": []
        }
    ],
    "user_stats": {"points": 40, "level": "Novice", "streak": 2,
                   "last_completed_date": "2025-02-27", "achievements": {"planner": true}}
}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(legacy), 0o644))

	state, err := s.Load()
	require.NoError(t, err)
	require.Len(t, state.Groups, 1)
	task := state.Groups[0].Tasks[0]
	assert.Equal(t, "2025-01-01T09:00:00", task.DueDate.String())
	assert.Equal(t, "2024-12-20T10:11:12.345678", task.CreatedAt.String())
	assert.Len(t, task.SubTasks, 1)
	assert.Empty(t, state.Goals)

	stats := state.UserStats
	assert.Equal(t, 40, stats.Points)
	assert.Equal(t, "2025-02-27", stats.LastCompletedDate.String())
	assert.True(t, stats.Achievements[types.AchievementPlanner])
	assert.False(t, stats.Achievements[types.AchievementDelegator])
	assert.Equal(t, []string{types.DefaultTheme}, stats.UnlockedThemes)
}

func TestJSONSaveWritesIndentedDocument(t *testing.T) {
	s, _ := newTestJSONStore(t)
	require.NoError(t, s.Save(richState()))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "{\n    \"last_task_id\": 7,"), text)
	assert.Contains(t, text, `"due_date": "2025-03-10T10:00:00"`)
	assert.Contains(t, text, `"last_completed_date": "2025-03-01"`)
	assert.Contains(t, text, `"timestamp": "2025-02-03T14:05:06.123456"`)
	assert.Contains(t, text, `"goal": null`)

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestJSONClosedStore(t *testing.T) {
	s, _ := newTestJSONStore(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.Load()
	assert.ErrorIs(t, err, types.ErrStoreClosed)
	assert.ErrorIs(t, s.Save(types.NewState()), types.ErrStoreClosed)
}

func TestWriteAtomicReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")
	require.NoError(t, writeAtomic(path, []byte(`{"a":1}`)))
	require.NoError(t, writeAtomic(path, []byte(`{"a":2}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":2}\n", string(data))
}
