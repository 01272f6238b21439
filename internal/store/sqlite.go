package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Meta keys.
const (
	metaLastTaskID = "last_task_id"
	metaStoreID    = "store_id"
)

// addedColumns lists columns introduced after the first schema release.
// Databases created earlier gain them on open with the given definitions.
var addedColumns = map[string]map[string]string{
	"tasks": {
		"completed_at": "TEXT DEFAULT NULL",
		"goal":         "TEXT DEFAULT NULL",
	},
	"user_stats": {
		"high_priority_completed": "INTEGER NOT NULL DEFAULT 0",
	},
}

// SQLiteStore keeps the state in normalised tables. Save rewrites every
// table inside one transaction.
type SQLiteStore struct {
	path   string
	db     *sql.DB
	logger *log.Logger
	now    clock
}

// OpenSQLite opens or creates the database at path and brings its schema
// up to date.
func OpenSQLite(path string, logger *log.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{path: path, db: db, logger: orDiscard(logger), now: time.Now}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing schema in %s: %w", path, err)
	}
	return s, nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the database. Idempotent.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) ensureSchema() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return err
	}
	for table, cols := range addedColumns {
		if err := s.ensureColumns(table, cols); err != nil {
			return err
		}
	}
	return nil
}

// ensureColumns adds any column in required that table lacks.
func (s *SQLiteStore) ensureColumns(table string, required map[string]string) error {
	rows, err := s.db.Query(fmt.Sprintf(`PRAGMA table_info(%s);`, table))
	if err != nil {
		return err
	}
	existing := map[string]struct{}{}
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			rows.Close()
			return err
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for col, def := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		s.logger.Debug("adding column", "table", table, "column", col)
		if _, err := s.db.Exec(fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s;`, table, col, def)); err != nil {
			return err
		}
	}
	return nil
}

// Load reads every table back into a State.
func (s *SQLiteStore) Load() (*types.State, error) {
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}

	state := types.NewState()
	loaders := []struct {
		name string
		fn   func(*types.State) error
	}{
		{"meta", s.loadMeta},
		{"goals", s.loadGoals},
		{"groups", s.loadGroups},
		{"stats", s.loadStats},
	}
	for _, l := range loaders {
		if err := l.fn(state); err != nil {
			return nil, fmt.Errorf("loading %s: %w", l.name, err)
		}
	}
	state.ApplyDefaults(s.now())
	s.logger.Debug("store loaded", "path", s.path, "groups", len(state.Groups), "last_task_id", state.LastTaskID)
	return state, nil
}

func (s *SQLiteStore) loadMeta(state *types.State) error {
	rows, err := s.db.Query(`SELECT key, value FROM meta;`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		switch key {
		case metaLastTaskID:
			n, err := strconv.Atoi(value)
			if err != nil {
				s.logger.Warn("ignoring malformed meta value", "key", key, "value", value)
				continue
			}
			state.LastTaskID = n
		case metaStoreID:
			state.StoreID = value
		}
	}
	return rows.Err()
}

func (s *SQLiteStore) loadGoals(state *types.State) error {
	rows, err := s.db.Query(`SELECT name, description FROM goals ORDER BY position;`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var g types.Goal
		var desc sql.NullString
		if err := rows.Scan(&g.Name, &desc); err != nil {
			return err
		}
		g.Description = nullString(desc)
		state.Goals = append(state.Goals, &g)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadGroups(state *types.State) error {
	groups := map[int]*types.Group{}
	rows, err := s.db.Query(`SELECT position, name FROM task_groups ORDER BY position;`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var pos int
		g := &types.Group{Tasks: []*types.Task{}, CompletedTasks: []*types.Task{}}
		if err := rows.Scan(&pos, &g.Name); err != nil {
			rows.Close()
			return err
		}
		groups[pos] = g
		state.Groups = append(state.Groups, g)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	tasks, err := s.loadTasks(groups)
	if err != nil {
		return err
	}
	if err := s.loadSubTasks(tasks); err != nil {
		return err
	}
	return s.loadLog(tasks)
}

func (s *SQLiteStore) loadTasks(groups map[int]*types.Group) (map[int]*types.Task, error) {
	rows, err := s.db.Query(`
SELECT id, group_position, archived, name, details, status, priority, due_date,
       recurring, tags, starred, created_at, completed_at, goal
FROM tasks ORDER BY group_position, archived, position;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := map[int]*types.Task{}
	for rows.Next() {
		var (
			t                        types.Task
			groupPos                 int
			archived, starred        bool
			details, due, recurring  sql.NullString
			created, completed, goal sql.NullString
			tags                     string
		)
		if err := rows.Scan(&t.ID, &groupPos, &archived, &t.Name, &details, &t.Status, &t.Priority,
			&due, &recurring, &tags, &starred, &created, &completed, &goal); err != nil {
			return nil, err
		}
		g, ok := groups[groupPos]
		if !ok {
			s.logger.Warn("dropping task with no group", "id", t.ID, "group_position", groupPos)
			continue
		}
		t.Details = nullString(details)
		t.Recurring = nullString(recurring)
		t.Goal = nullString(goal)
		t.Starred = starred
		t.DueDate = s.parseTime(due)
		t.CompletedAt = s.parseTime(completed)
		if ts := s.parseTime(created); ts != nil {
			t.CreatedAt = *ts
		}
		if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
			s.logger.Warn("ignoring malformed tags", "id", t.ID, "err", err)
		}
		t.SubTasks = []types.SubTask{}
		t.Log = []types.LogEntry{}

		task := &t
		if archived {
			g.CompletedTasks = append(g.CompletedTasks, task)
		} else {
			g.Tasks = append(g.Tasks, task)
		}
		tasks[t.ID] = task
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) loadSubTasks(tasks map[int]*types.Task) error {
	rows, err := s.db.Query(`SELECT task_id, description, status FROM sub_tasks ORDER BY task_id, position;`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		var sub types.SubTask
		if err := rows.Scan(&id, &sub.Description, &sub.Status); err != nil {
			return err
		}
		if t, ok := tasks[id]; ok {
			t.SubTasks = append(t.SubTasks, sub)
		}
	}
	return rows.Err()
}

func (s *SQLiteStore) loadLog(tasks map[int]*types.Task) error {
	rows, err := s.db.Query(`SELECT task_id, timestamp, note FROM task_log ORDER BY task_id, position;`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		var stamp, note string
		if err := rows.Scan(&id, &stamp, &note); err != nil {
			return err
		}
		t, ok := tasks[id]
		if !ok {
			continue
		}
		ts, err := types.ParseTimestamp(stamp)
		if err != nil {
			s.logger.Warn("ignoring malformed log timestamp", "id", id, "value", stamp)
		}
		t.Log = append(t.Log, types.LogEntry{Timestamp: ts, Note: note})
	}
	return rows.Err()
}

func (s *SQLiteStore) loadStats(state *types.State) error {
	stats := &state.UserStats
	var last sql.NullString
	err := s.db.QueryRow(`
SELECT points, streak, last_completed_date, streak_freezes, active_theme, high_priority_completed
FROM user_stats WHERE id = 1;`).Scan(&stats.Points, &stats.Streak, &last, &stats.StreakFreezes,
		&stats.ActiveTheme, &stats.HighPriorityCompleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if last.Valid {
		var d types.Date
		if err := d.UnmarshalText([]byte(last.String)); err == nil {
			stats.LastCompletedDate = &d
		}
	}

	stats.UnlockedThemes = nil
	rows, err := s.db.Query(`SELECT name FROM themes ORDER BY position;`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return err
		}
		stats.UnlockedThemes = append(stats.UnlockedThemes, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = s.db.Query(`SELECT name, unlocked FROM achievements;`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var unlocked bool
		if err := rows.Scan(&name, &unlocked); err != nil {
			return err
		}
		stats.Achievements[name] = unlocked
	}
	return rows.Err()
}

func (s *SQLiteStore) parseTime(v sql.NullString) *types.Timestamp {
	if !v.Valid || v.String == "" {
		return nil
	}
	ts, err := types.ParseTimestamp(v.String)
	if err != nil {
		s.logger.Warn("ignoring malformed timestamp", "value", v.String)
		return nil
	}
	return &ts
}

// Save replaces the contents of every table in one transaction.
func (s *SQLiteStore) Save(state *types.State) error {
	if s.db == nil {
		return types.ErrStoreClosed
	}
	if err := prepareSave(state); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"meta", "task_groups", "tasks", "sub_tasks", "task_log", "goals", "user_stats", "themes", "achievements"} {
		if _, err := tx.Exec(`DELETE FROM ` + table + `;`); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	if err := saveMeta(tx, state); err != nil {
		return fmt.Errorf("saving meta: %w", err)
	}
	if err := saveGroups(tx, state); err != nil {
		return fmt.Errorf("saving groups: %w", err)
	}
	if err := saveGoals(tx, state); err != nil {
		return fmt.Errorf("saving goals: %w", err)
	}
	if err := saveStats(tx, &state.UserStats); err != nil {
		return fmt.Errorf("saving stats: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Debug("store saved", "path", s.path, "groups", len(state.Groups))
	return nil
}

func saveMeta(tx *sql.Tx, state *types.State) error {
	_, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?), (?, ?);`,
		metaLastTaskID, strconv.Itoa(state.LastTaskID),
		metaStoreID, state.StoreID)
	return err
}

func saveGroups(tx *sql.Tx, state *types.State) error {
	for gpos, g := range state.Groups {
		if _, err := tx.Exec(`INSERT INTO task_groups (position, name) VALUES (?, ?);`, gpos, g.Name); err != nil {
			return err
		}
		for pos, t := range g.Tasks {
			if err := saveTask(tx, gpos, false, pos, t); err != nil {
				return err
			}
		}
		for pos, t := range g.CompletedTasks {
			if err := saveTask(tx, gpos, true, pos, t); err != nil {
				return err
			}
		}
	}
	return nil
}

func saveTask(tx *sql.Tx, groupPos int, archived bool, pos int, t *types.Task) error {
	tags, err := json.Marshal(types.NormalizeTags(t.Tags))
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
INSERT INTO tasks (id, group_position, archived, position, name, details, status, priority,
                   due_date, recurring, tags, starred, created_at, completed_at, goal)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		t.ID, groupPos, archived, pos, t.Name, t.Details, t.Status, t.Priority,
		formatTime(t.DueDate), t.Recurring, string(tags), t.Starred,
		t.CreatedAt.String(), formatTime(t.CompletedAt), t.Goal)
	if err != nil {
		return fmt.Errorf("task %d: %w", t.ID, err)
	}

	for i, sub := range t.SubTasks {
		if _, err := tx.Exec(`INSERT INTO sub_tasks (task_id, position, description, status) VALUES (?, ?, ?, ?);`,
			t.ID, i, sub.Description, sub.Status); err != nil {
			return fmt.Errorf("task %d sub-task %d: %w", t.ID, i+1, err)
		}
	}
	for i, entry := range t.Log {
		if _, err := tx.Exec(`INSERT INTO task_log (task_id, position, timestamp, note) VALUES (?, ?, ?, ?);`,
			t.ID, i, entry.Timestamp.String(), entry.Note); err != nil {
			return fmt.Errorf("task %d log entry %d: %w", t.ID, i+1, err)
		}
	}
	return nil
}

func saveGoals(tx *sql.Tx, state *types.State) error {
	for pos, g := range state.Goals {
		if _, err := tx.Exec(`INSERT INTO goals (position, name, description) VALUES (?, ?, ?);`,
			pos, g.Name, g.Description); err != nil {
			return err
		}
	}
	return nil
}

func saveStats(tx *sql.Tx, stats *types.UserStats) error {
	var last any
	if stats.LastCompletedDate != nil {
		last = stats.LastCompletedDate.String()
	}
	if _, err := tx.Exec(`
INSERT INTO user_stats (id, points, streak, last_completed_date, streak_freezes, active_theme, high_priority_completed)
VALUES (1, ?, ?, ?, ?, ?, ?);`,
		stats.Points, stats.Streak, last, stats.StreakFreezes, stats.ActiveTheme, stats.HighPriorityCompleted); err != nil {
		return err
	}
	for pos, name := range stats.UnlockedThemes {
		if _, err := tx.Exec(`INSERT INTO themes (position, name) VALUES (?, ?);`, pos, name); err != nil {
			return err
		}
	}
	for name, unlocked := range stats.Achievements {
		if _, err := tx.Exec(`INSERT INTO achievements (name, unlocked) VALUES (?, ?);`, name, unlocked); err != nil {
			return err
		}
	}
	return nil
}

// formatTime returns nil for an unset timestamp so the column stays NULL.
func formatTime(ts *types.Timestamp) any {
	if ts == nil {
		return nil
	}
	return ts.String()
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
