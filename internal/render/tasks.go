package render

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/kairu/internal/engine"
	"github.com/mesh-intelligence/kairu/pkg/types"
)

// TaskDetail prints one task in a panel, optionally followed by its
// progress log.
func (r *Renderer) TaskDetail(t *types.Task, group string, showLog bool) {
	details := t.DetailsText()
	if details == "" {
		details = "No details."
	}
	recurring := notSet
	if t.IsRecurring() {
		recurring = *t.Recurring
	}
	goal := t.GoalName()
	if goal == "" {
		goal = notSet
	}

	lines := []string{
		fmt.Sprintf("ID: %d", t.ID),
		fmt.Sprintf("Group: %s", group),
		fmt.Sprintf("Status: %s", Title(t.Status)),
		fmt.Sprintf("Priority: %s", Title(t.Priority)),
		fmt.Sprintf("Due: %s", formatDue(t.DueDate, dueLayout)),
		fmt.Sprintf("Recurring: %s", recurring),
		fmt.Sprintf("Goal: %s", goal),
		fmt.Sprintf("Tags: %s", strings.Join(t.Tags, ", ")),
		fmt.Sprintf("Details: %s", details),
	}
	for i, st := range t.SubTasks {
		lines = append(lines, fmt.Sprintf("  %s %d.%d %s", statusSymbol(st.Status), t.ID, i+1, st.Description))
	}
	r.panel(starred(t), strings.Join(lines, "\n"), r.palette.Success)

	if !showLog {
		return
	}
	if len(t.Log) == 0 {
		r.Notice("No progress log found for this task.")
		return
	}
	r.Heading("📝 Progress Log")
	tw := r.table("TIMESTAMP", "NOTE")
	for _, entry := range t.Log {
		fmt.Fprintf(tw, "%s\t%s\n", entry.Timestamp.Local().Format(dueLayout), entry.Note)
	}
	tw.Flush()
}

// GroupTasks prints each group's filtered tasks with their sub-tasks.
func (r *Renderer) GroupTasks(groups []engine.GroupTasks) {
	if len(groups) == 0 {
		r.Notice("No groups yet. Use 'kairu group add' to create one.")
		return
	}
	for _, g := range groups {
		r.Heading(fmt.Sprintf("-- Group: %s --", g.Group))
		switch {
		case g.Empty:
			r.Notice("  This group has no tasks to show.")
			continue
		case len(g.Tasks) == 0:
			r.Notice("  No tasks match the current filters.")
			continue
		}

		tw := r.table("ID", "STATUS", "NAME", "PRIORITY", "DUE", "TAGS")
		for _, t := range g.Tasks {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				t.ID, statusSymbol(t.Status), starred(t), t.Priority,
				formatDue(t.DueDate, dueLayout), strings.Join(t.Tags, ", "))
			for i, st := range t.SubTasks {
				fmt.Fprintf(tw, "%d.%d\t%s\t  └── %s\t\t\t\n", t.ID, i+1, statusSymbol(st.Status), st.Description)
			}
		}
		tw.Flush()
	}
}

// GoalTasks prints active tasks organised under their goals.
func (r *Renderer) GoalTasks(goals []engine.GoalTasks) {
	if len(goals) == 0 {
		r.Notice("No active tasks.")
		return
	}
	r.Heading("--- Tasks Organized by Goal ---")
	for _, gt := range goals {
		border := r.palette.Accent
		if gt.Goal == engine.Unassigned {
			border = r.palette.Warning
		}
		lines := make([]string, len(gt.Tasks))
		for i, t := range gt.Tasks {
			lines[i] = fmt.Sprintf("- (ID %d) %s", t.ID, t.Name)
		}
		r.panel("🎯 Goal: "+gt.Goal, strings.Join(lines, "\n"), border)
	}
}

// Groups lists group names with their active and archived counts.
func (r *Renderer) Groups(groups []*types.Group) {
	if len(groups) == 0 {
		r.Notice("No groups defined. Use 'kairu group add' to create one.")
		return
	}
	tw := r.table("NAME", "ACTIVE", "COMPLETED")
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", g.Name, len(g.Tasks), len(g.CompletedTasks))
	}
	tw.Flush()
}

// Goals lists goals and their descriptions.
func (r *Renderer) Goals(goals []*types.Goal) {
	if len(goals) == 0 {
		r.Notice("No goals defined. Use 'kairu goal add' to create one.")
		return
	}
	tw := r.table("NAME", "DESCRIPTION")
	for _, g := range goals {
		desc := ""
		if g.Description != nil {
			desc = *g.Description
		}
		fmt.Fprintf(tw, "%s\t%s\n", g.Name, desc)
	}
	tw.Flush()
}

// Completed lists a group's archived tasks in the order given.
func (r *Renderer) Completed(tasks []*types.Task, group string) {
	if len(tasks) == 0 {
		r.Notice(fmt.Sprintf("No completed tasks found in group '%s'.", group))
		return
	}
	r.Heading("Completed Tasks in Group: " + group)
	tw := r.table("ID", "NAME", "COMPLETED AT")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", t.ID, t.Name, formatDue(t.CompletedAt, dueLayout))
	}
	tw.Flush()
}

// Focus prints the focus list. Due dates show the time of day only.
func (r *Renderer) Focus(items []types.FocusItem) {
	if len(items) == 0 {
		r.println(r.bold(r.palette.Success), "✅ Nothing to focus on right now. Great job!")
		return
	}
	r.Heading("Today's Focus")
	r.taskItems(items, timeLayout)
}

// Candidates prints the plan-day candidate list.
func (r *Renderer) Candidates(items []types.FocusItem) {
	r.Heading("Top Candidates for Today")
	r.taskItems(items, dueLayout)
}

func (r *Renderer) taskItems(items []types.FocusItem, layout string) {
	tw := r.table("ID", "NAME", "GROUP", "DUE")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", it.Task.ID, starred(it.Task), it.Group, formatDue(it.Task.DueDate, layout))
	}
	tw.Flush()
}

// Search prints keyword hits.
func (r *Renderer) Search(results []types.SearchResult) {
	if len(results) == 0 {
		r.Notice("No results found.")
		return
	}
	r.Heading("Search Results")
	tw := r.table("ID", "TYPE", "MATCH", "LOCATION")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", res.ID, res.Type, res.Match, res.Location)
	}
	tw.Flush()
}

// TaskList prints "ID n: name" lines under a heading.
func (r *Renderer) TaskList(heading string, items []types.FocusItem) {
	r.Heading(heading)
	for _, it := range items {
		r.Plain(fmt.Sprintf("  ID %d: %s", it.Task.ID, it.Task.Name))
	}
}

// Accomplished prints the names of tasks completed today in a panel.
func (r *Renderer) Accomplished(items []types.FocusItem) {
	if len(items) == 0 {
		r.Notice("No tasks were completed today.")
		return
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "- " + it.Task.Name
	}
	r.panel("✅ Accomplished Today", strings.Join(lines, "\n"), r.palette.Success)
}

// Stale describes a stuck task.
func (r *Renderer) Stale(item *types.FocusItem) {
	r.Plain(fmt.Sprintf("Task '%s' in group '%s' was created on %s.",
		item.Task.Name, item.Group, types.DateOf(item.Task.CreatedAt.Time)))
}
