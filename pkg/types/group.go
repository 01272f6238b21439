package types

import "strings"

// Group is a named bucket holding active and archived tasks. Both lists keep
// insertion order.
type Group struct {
	Name           string  `json:"name" yaml:"name" toml:"name"`
	Tasks          []*Task `json:"tasks" yaml:"tasks" toml:"tasks"`
	CompletedTasks []*Task `json:"completed_tasks" yaml:"completed_tasks" toml:"completed_tasks"`
}

// Goal is a long-term label tasks may link to by name.
type Goal struct {
	Name        string  `json:"name" yaml:"name" toml:"name"`
	Description *string `json:"description" yaml:"description,omitempty" toml:"description,omitempty"`
}

// Matches reports whether name equals the group name ignoring case.
func (g *Group) Matches(name string) bool {
	return strings.EqualFold(g.Name, name)
}

// ActiveByName returns the active task with the given name, ignoring case.
func (g *Group) ActiveByName(name string) *Task {
	for _, t := range g.Tasks {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return nil
}

// Archive moves the active task with the given id to the end of the archived
// list. Remaining active tasks keep their relative order. It reports whether
// the task was found.
func (g *Group) Archive(id int) bool {
	for i, t := range g.Tasks {
		if t.ID != id {
			continue
		}
		g.Tasks = append(g.Tasks[:i:i], g.Tasks[i+1:]...)
		g.CompletedTasks = append(g.CompletedTasks, t)
		return true
	}
	return false
}

// Remove deletes the task with the given id from whichever list holds it.
func (g *Group) Remove(id int) bool {
	if i := indexOf(g.Tasks, id); i >= 0 {
		g.Tasks = append(g.Tasks[:i:i], g.Tasks[i+1:]...)
		return true
	}
	if i := indexOf(g.CompletedTasks, id); i >= 0 {
		g.CompletedTasks = append(g.CompletedTasks[:i:i], g.CompletedTasks[i+1:]...)
		return true
	}
	return false
}

// Matches reports whether name equals the goal name ignoring case.
func (g *Goal) Matches(name string) bool {
	return strings.EqualFold(g.Name, name)
}

func indexOf(tasks []*Task, id int) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
