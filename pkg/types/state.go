package types

import "time"

// State is the whole persisted document. Every command loads one State,
// mutates it through the engine, and writes it back in full.
type State struct {
	LastTaskID int       `json:"last_task_id" yaml:"last_task_id" toml:"last_task_id"`
	StoreID    string    `json:"store_id,omitempty" yaml:"store_id,omitempty" toml:"store_id,omitempty"`
	Groups     []*Group  `json:"groups" yaml:"groups" toml:"groups"`
	Goals      []*Goal   `json:"goals" yaml:"goals" toml:"goals"`
	UserStats  UserStats `json:"user_stats" yaml:"user_stats" toml:"user_stats"`
}

// NewState returns an empty store with default stats.
func NewState() *State {
	return &State{
		Groups:    []*Group{},
		Goals:     []*Goal{},
		UserStats: NewUserStats(),
	}
}

// ApplyDefaults fills in every field an older or partial store may lack.
// Missing creation times are stamped with now. It never rejects data.
func (s *State) ApplyDefaults(now time.Time) {
	if s.Groups == nil {
		s.Groups = []*Group{}
	}
	if s.Goals == nil {
		s.Goals = []*Goal{}
	}
	s.UserStats.applyDefaults()

	groups := s.Groups[:0]
	maxID := 0
	for _, g := range s.Groups {
		if g == nil {
			continue
		}
		g.Tasks = compactTasks(g.Tasks)
		g.CompletedTasks = compactTasks(g.CompletedTasks)
		for _, t := range g.Tasks {
			t.applyDefaults(now, StatusPending)
			maxID = max(maxID, t.ID)
		}
		for _, t := range g.CompletedTasks {
			t.applyDefaults(now, StatusDone)
			maxID = max(maxID, t.ID)
		}
		groups = append(groups, g)
	}
	s.Groups = groups

	goals := s.Goals[:0]
	for _, g := range s.Goals {
		if g != nil {
			goals = append(goals, g)
		}
	}
	s.Goals = goals

	// The counter must stay ahead of every id ever handed out.
	if s.LastTaskID < maxID {
		s.LastTaskID = maxID
	}
}

func compactTasks(tasks []*Task) []*Task {
	out := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

func (t *Task) applyDefaults(now time.Time, status string) {
	if ValidateStatus(t.Status) != nil {
		t.Status = status
	}
	if ValidatePriority(t.Priority) != nil {
		t.Priority = PriorityMedium
	}
	if t.DueDate != nil && t.DueDate.IsZero() {
		t.DueDate = nil
	}
	if t.CompletedAt != nil && t.CompletedAt.IsZero() {
		t.CompletedAt = nil
	}
	if t.Recurring != nil && ValidateRecurrence(*t.Recurring) != nil {
		t.Recurring = nil
	}
	if t.Goal != nil && *t.Goal == "" {
		t.Goal = nil
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = NewTimestamp(now)
	}
	t.Tags = NormalizeTags(t.Tags)
	if t.SubTasks == nil {
		t.SubTasks = []SubTask{}
	}
	for i := range t.SubTasks {
		if ValidateStatus(t.SubTasks[i].Status) != nil {
			t.SubTasks[i].Status = StatusPending
		}
	}
	if t.Log == nil {
		t.Log = []LogEntry{}
	}
}

// FindGroup returns the group named name, ignoring case.
func (s *State) FindGroup(name string) *Group {
	for _, g := range s.Groups {
		if g.Matches(name) {
			return g
		}
	}
	return nil
}

// FindGoal returns the goal named name, ignoring case.
func (s *State) FindGoal(name string) *Goal {
	for _, g := range s.Goals {
		if g.Matches(name) {
			return g
		}
	}
	return nil
}

// FindTask locates a task by id across all groups and both lists. archived
// reports whether it was found in the completed list.
func (s *State) FindTask(id int) (group *Group, task *Task, archived bool) {
	for _, g := range s.Groups {
		for _, t := range g.Tasks {
			if t.ID == id {
				return g, t, false
			}
		}
		for _, t := range g.CompletedTasks {
			if t.ID == id {
				return g, t, true
			}
		}
	}
	return nil, nil, false
}

// NextTaskID advances and returns the global id counter.
func (s *State) NextTaskID() int {
	s.LastTaskID++
	return s.LastTaskID
}
