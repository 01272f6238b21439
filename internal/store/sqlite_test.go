package store

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

func columns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query(`PRAGMA table_info(` + table + `);`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var cid, notnull, pk int
		var name, ctype string
		var dflt sql.NullString
		require.NoError(t, rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestSQLiteAddsMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), SQLiteFileName)

	// A database from before completed_at and goal existed.
	old, err := sql.Open("sqlite", sqliteDSN(path))
	require.NoError(t, err)
	_, err = old.Exec(`
CREATE TABLE tasks (
    id INTEGER PRIMARY KEY, group_position INTEGER NOT NULL, archived INTEGER NOT NULL DEFAULT 0,
    position INTEGER NOT NULL, name TEXT NOT NULL, details TEXT, status TEXT NOT NULL DEFAULT 'pending',
    priority TEXT NOT NULL DEFAULT 'medium', due_date TEXT, recurring TEXT,
    tags TEXT NOT NULL DEFAULT '[]', starred INTEGER NOT NULL DEFAULT 0, created_at TEXT
);
CREATE TABLE task_groups (position INTEGER PRIMARY KEY, name TEXT NOT NULL);
INSERT INTO task_groups (position, name) VALUES (0, 'Work');
INSERT INTO tasks (id, group_position, position, name, created_at) VALUES (4, 0, 0, 'Legacy', '2025-01-05T08:00:00');`)
	require.NoError(t, err)
	require.NoError(t, old.Close())

	s, err := OpenSQLite(path, nil)
	require.NoError(t, err)
	defer s.Close()
	s.now = func() time.Time { return fixedNow }

	cols := columns(t, s.db, "tasks")
	assert.Contains(t, cols, "completed_at")
	assert.Contains(t, cols, "goal")

	state, err := s.Load()
	require.NoError(t, err)
	require.Len(t, state.Groups, 1)
	task := state.Groups[0].Tasks[0]
	assert.Equal(t, "Legacy", task.Name)
	assert.Nil(t, task.Goal)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, []string{}, task.Tags)
	assert.Equal(t, 4, state.LastTaskID, "counter catches up with stored ids")
}

func TestSQLiteSaveReplacesEverything(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), SQLiteFileName), nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(richState()))

	smaller := types.NewState()
	smaller.LastTaskID = 9
	smaller.Groups = append(smaller.Groups, &types.Group{Name: "Only", Tasks: []*types.Task{}, CompletedTasks: []*types.Task{}})
	require.NoError(t, s.Save(smaller))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got.Groups, 1)
	assert.Equal(t, "Only", got.Groups[0].Name)
	assert.Empty(t, got.Goals)
	assert.Equal(t, 9, got.LastTaskID)

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM sub_tasks;`).Scan(&n))
	assert.Zero(t, n)
}

func TestSQLiteClose(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), SQLiteFileName), nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.Load()
	assert.ErrorIs(t, err, types.ErrStoreClosed)
	assert.ErrorIs(t, s.Save(types.NewState()), types.ErrStoreClosed)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:memdb?mode=memory", sqliteDSN("file:memdb?mode=memory"))

	dsn := sqliteDSN("/tmp/kairu.db")
	assert.Contains(t, dsn, "file:///tmp/kairu.db?")
	assert.Contains(t, dsn, "mode=rwc")
}
