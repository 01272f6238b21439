package engine

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/kairu/pkg/types"
)

// DefaultStaleDays is the age at which an untouched task counts as stale.
const DefaultStaleDays = types.DefaultStaleDays

// Sort keys accepted by TaskFilter.
const (
	SortPriority = "priority"
	SortDueDate  = "due_date"
)

// Unassigned labels tasks without a valid goal in TasksByGoal.
const Unassigned = "Unassigned"

// TaskFilter narrows ListTasks. Zero values match everything. Status "done"
// lists archived tasks; anything else lists active ones.
type TaskFilter struct {
	Group    string
	Priority string
	Status   string
	Tag      string
	Starred  bool
	Sort     string
}

// GroupTasks is one group's slice of a filtered listing.
type GroupTasks struct {
	Group string `json:"group"`
	// Empty is true when the group has no tasks in the listed state at all,
	// as opposed to none surviving the filters.
	Empty bool          `json:"empty"`
	Tasks []*types.Task `json:"tasks"`
}

// GoalTasks collects the active tasks linked to one goal.
type GoalTasks struct {
	Goal  string        `json:"goal"`
	Tasks []*types.Task `json:"tasks"`
}

// activeTasks snapshots every active task with its group, in store order.
func (e *Engine) activeTasks() []types.FocusItem {
	var items []types.FocusItem
	for _, g := range e.state.Groups {
		for _, t := range g.Tasks {
			items = append(items, types.FocusItem{Task: t, Group: g.Name})
		}
	}
	return items
}

// PendingTasks returns every active task with its group.
func (e *Engine) PendingTasks() []types.FocusItem {
	return e.activeTasks()
}

// FocusTasks builds the focus list: tasks due today, then starred tasks,
// then high-priority tasks, then the best-ranked task of groupFilter when it
// names an existing group. Each task appears once.
func (e *Engine) FocusTasks(groupFilter string) []types.FocusItem {
	today := types.DateOf(e.now())
	active := e.activeTasks()
	seen := make(map[int]bool)
	focus := []types.FocusItem{}

	collect := func(keep func(*types.Task) bool) {
		for _, item := range active {
			if !seen[item.Task.ID] && keep(item.Task) {
				seen[item.Task.ID] = true
				focus = append(focus, item)
			}
		}
	}
	collect(func(t *types.Task) bool {
		return t.DueDate != nil && types.DateOf(t.DueDate.Time).Equal(today)
	})
	collect(func(t *types.Task) bool { return t.Starred })
	collect(func(t *types.Task) bool { return t.Priority == types.PriorityHigh })

	if groupFilter == "" {
		return focus
	}
	g := e.state.FindGroup(groupFilter)
	if g == nil {
		return focus
	}
	var best *types.Task
	for _, t := range g.Tasks {
		if seen[t.ID] {
			continue
		}
		if best == nil || types.PriorityRank(t.Priority) < types.PriorityRank(best.Priority) {
			best = t
		}
	}
	if best != nil {
		focus = append(focus, types.FocusItem{Task: best, Group: g.Name})
	}
	return focus
}

// FindStaleTask returns the oldest active, non-recurring task whose age in
// whole days is at least thresholdDays. It returns nil when none qualifies.
func (e *Engine) FindStaleTask(thresholdDays int) (*types.FocusItem, error) {
	if thresholdDays < 0 {
		return nil, fmt.Errorf("find stale task: %w", types.ErrInvalidThreshold)
	}
	now := e.now()

	var stale *types.FocusItem
	for _, item := range e.activeTasks() {
		t := item.Task
		if t.IsRecurring() {
			continue
		}
		if int(now.Sub(t.CreatedAt.Time).Hours()/24) < thresholdDays {
			continue
		}
		if stale == nil || olderThan(t, stale.Task) {
			candidate := item
			stale = &candidate
		}
	}
	return stale, nil
}

func olderThan(a, b *types.Task) bool {
	if c := a.CreatedAt.Compare(b.CreatedAt.Time); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

// SearchAll matches keyword, ignoring case, against task names, details and
// sub-task descriptions. Results run group by group: active tasks, then
// archived ones, each followed by its matching sub-tasks.
func (e *Engine) SearchAll(keyword string) []types.SearchResult {
	needle := strings.ToLower(keyword)
	contains := func(s string) bool { return strings.Contains(strings.ToLower(s), needle) }

	results := []types.SearchResult{}
	scan := func(g *types.Group, tasks []*types.Task, kind string) {
		for _, t := range tasks {
			if contains(t.Name) || (t.Details != nil && contains(*t.Details)) {
				results = append(results, types.SearchResult{
					Type:     kind,
					ID:       strconv.Itoa(t.ID),
					Match:    t.Name,
					Location: fmt.Sprintf("Group '%s'", g.Name),
				})
			}
			for i, sub := range t.SubTasks {
				if contains(sub.Description) {
					results = append(results, types.SearchResult{
						Type:     types.MatchSubTask,
						ID:       fmt.Sprintf("%d.%d", t.ID, i+1),
						Match:    sub.Description,
						Location: fmt.Sprintf("Task #%d", t.ID),
					})
				}
			}
		}
	}
	for _, g := range e.state.Groups {
		scan(g, g.Tasks, types.MatchActiveTask)
		scan(g, g.CompletedTasks, types.MatchCompletedTask)
	}
	return results
}

// HealthCheck counts active tasks due today, how many of them are high
// priority and how many are tagged #rest.
func (e *Engine) HealthCheck() types.HealthStats {
	today := types.DateOf(e.now())
	var hs types.HealthStats
	for _, item := range e.activeTasks() {
		t := item.Task
		if t.DueDate == nil || !types.DateOf(t.DueDate.Time).Equal(today) {
			continue
		}
		hs.TotalToday++
		if t.Priority == types.PriorityHigh {
			hs.HighPriorityCount++
		}
		if t.HasTag(types.RestTag) {
			hs.RestTaskCount++
		}
	}
	return hs
}

// CompletedToday returns archived tasks whose completion falls on today.
func (e *Engine) CompletedToday() []types.FocusItem {
	today := types.DateOf(e.now())
	var done []types.FocusItem
	for _, g := range e.state.Groups {
		for _, t := range g.CompletedTasks {
			if t.CompletedAt != nil && types.DateOf(t.CompletedAt.Time).Equal(today) {
				done = append(done, types.FocusItem{Task: t, Group: g.Name})
			}
		}
	}
	return done
}

// CompletedTodayCount is len(CompletedToday()).
func (e *Engine) CompletedTodayCount() int {
	return len(e.CompletedToday())
}

// TotalCompletedCount counts archived tasks across all groups.
func (e *Engine) TotalCompletedCount() int {
	n := 0
	for _, g := range e.state.Groups {
		n += len(g.CompletedTasks)
	}
	return n
}

// ListTasks returns the filtered, optionally sorted tasks of every group (or
// of the one named by f.Group) in group order.
func (e *Engine) ListTasks(f TaskFilter) ([]GroupTasks, error) {
	if f.Priority != "" {
		if err := types.ValidatePriority(f.Priority); err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
	}
	if f.Status != "" {
		if err := types.ValidateStatus(f.Status); err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
	}
	switch f.Sort {
	case "", SortPriority, SortDueDate:
	default:
		return nil, fmt.Errorf("list tasks: sort %q: %w", f.Sort, types.ErrInvalidSort)
	}
	if f.Group != "" && e.state.FindGroup(f.Group) == nil {
		return nil, fmt.Errorf("list tasks: group %q: %w", f.Group, types.ErrGroupNotFound)
	}

	var out []GroupTasks
	for _, g := range e.state.Groups {
		if f.Group != "" && !g.Matches(f.Group) {
			continue
		}
		source := g.Tasks
		if f.Status == types.StatusDone {
			source = g.CompletedTasks
		}
		gt := GroupTasks{Group: g.Name, Empty: len(source) == 0, Tasks: []*types.Task{}}
		for _, t := range source {
			if f.matches(t) {
				gt.Tasks = append(gt.Tasks, t)
			}
		}
		sortTasks(gt.Tasks, f.Sort)
		out = append(out, gt)
	}
	return out, nil
}

func (f TaskFilter) matches(t *types.Task) bool {
	if f.Starred && !t.Starred {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Tag != "" && !t.HasTag(f.Tag) {
		return false
	}
	return true
}

// sortTasks orders by priority rank or by due date (undated last). Both
// sorts are stable.
func sortTasks(tasks []*types.Task, key string) {
	switch key {
	case SortPriority:
		slices.SortStableFunc(tasks, func(a, b *types.Task) int {
			return types.PriorityRank(a.Priority) - types.PriorityRank(b.Priority)
		})
	case SortDueDate:
		slices.SortStableFunc(tasks, func(a, b *types.Task) int {
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return 0
			case a.DueDate == nil:
				return 1
			case b.DueDate == nil:
				return -1
			}
			return a.DueDate.Compare(b.DueDate.Time)
		})
	}
}

// TasksByGoal groups active tasks under their goals in goal order. Tasks
// without a goal, or linked to a goal that no longer exists, are collected
// under "Unassigned" at the end. Goals with no tasks are omitted.
func (e *Engine) TasksByGoal() []GoalTasks {
	byGoal := make(map[string][]*types.Task)
	var loose []*types.Task
	for _, item := range e.activeTasks() {
		t := item.Task
		if gl := e.state.FindGoal(t.GoalName()); t.Goal != nil && gl != nil {
			byGoal[gl.Name] = append(byGoal[gl.Name], t)
			continue
		}
		loose = append(loose, t)
	}

	var out []GoalTasks
	for _, gl := range e.state.Goals {
		if tasks := byGoal[gl.Name]; len(tasks) > 0 {
			out = append(out, GoalTasks{Goal: gl.Name, Tasks: tasks})
		}
	}
	if len(loose) > 0 {
		out = append(out, GoalTasks{Goal: Unassigned, Tasks: loose})
	}
	return out
}
