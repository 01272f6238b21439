package types

import (
	"strings"
)

// Task states.
const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Recurrence rules.
const (
	RecurDaily   = "daily"
	RecurWeekly  = "weekly"
	RecurMonthly = "monthly"
)

// RestTag marks a scheduled break for the health check.
const RestTag = "#rest"

var validStatuses = map[string]bool{
	StatusPending: true,
	StatusDone:    true,
}

// priorityRank orders priorities for curation; unknown or unset sorts last.
var priorityRank = map[string]int{
	PriorityHigh:   1,
	PriorityMedium: 2,
	PriorityLow:    3,
}

var validRecurrences = map[string]bool{
	RecurDaily:   true,
	RecurWeekly:  true,
	RecurMonthly: true,
}

// Task is a single unit of work owned by one group for its lifetime.
type Task struct {
	ID          int        `json:"id" yaml:"id" toml:"id"`
	Name        string     `json:"name" yaml:"name" toml:"name"`
	Details     *string    `json:"details" yaml:"details,omitempty" toml:"details,omitempty"`
	Status      string     `json:"status" yaml:"status" toml:"status"`
	Priority    string     `json:"priority" yaml:"priority" toml:"priority"`
	DueDate     *Timestamp `json:"due_date" yaml:"due_date,omitempty" toml:"due_date,omitempty"`
	Recurring   *string    `json:"recurring" yaml:"recurring,omitempty" toml:"recurring,omitempty"`
	Tags        []string   `json:"tags" yaml:"tags" toml:"tags"`
	SubTasks    []SubTask  `json:"sub_tasks" yaml:"sub_tasks" toml:"sub_tasks"`
	Starred     bool       `json:"starred" yaml:"starred" toml:"starred"`
	CreatedAt   Timestamp  `json:"created_at" yaml:"created_at" toml:"created_at"`
	CompletedAt *Timestamp `json:"completed_at" yaml:"completed_at,omitempty" toml:"completed_at,omitempty"`
	Log         []LogEntry `json:"log" yaml:"log" toml:"log"`
	Goal        *string    `json:"goal" yaml:"goal,omitempty" toml:"goal,omitempty"`
}

// SubTask is a checklist entry under a task. Its display position is 1-based.
type SubTask struct {
	Description string `json:"description" yaml:"description" toml:"description"`
	Status      string `json:"status" yaml:"status" toml:"status"`
}

// LogEntry is a timestamped progress note.
type LogEntry struct {
	Timestamp Timestamp `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
	Note      string    `json:"note" yaml:"note" toml:"note"`
}

// IsDone reports whether the task has been archived as done.
func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

// IsRecurring reports whether a recurrence rule is set.
func (t *Task) IsRecurring() bool {
	return t.Recurring != nil && *t.Recurring != ""
}

// HasTag reports whether the task carries tag (normalised before comparing).
func (t *Task) HasTag(tag string) bool {
	want := normalizeTag(tag)
	for _, have := range t.Tags {
		if have == want {
			return true
		}
	}
	return false
}

// DetailsText returns the details or "" when unset.
func (t *Task) DetailsText() string {
	if t.Details == nil {
		return ""
	}
	return *t.Details
}

// GoalName returns the linked goal or "" when unlinked.
func (t *Task) GoalName() string {
	if t.Goal == nil {
		return ""
	}
	return *t.Goal
}

// PriorityRank returns 1 for high, 2 for medium, 3 for low and 4 otherwise.
func PriorityRank(priority string) int {
	if r, ok := priorityRank[priority]; ok {
		return r
	}
	return 4
}

// ValidatePriority returns ErrInvalidPriority unless p is low, medium or high.
func ValidatePriority(p string) error {
	if _, ok := priorityRank[p]; !ok {
		return ErrInvalidPriority
	}
	return nil
}

// ValidateStatus returns ErrInvalidStatus unless s is pending or done.
func ValidateStatus(s string) error {
	if !validStatuses[s] {
		return ErrInvalidStatus
	}
	return nil
}

// ValidateRecurrence returns ErrInvalidRecurrence unless r is a known rule.
func ValidateRecurrence(r string) error {
	if !validRecurrences[r] {
		return ErrInvalidRecurrence
	}
	return nil
}

// ParseTags splits a comma-separated list into normalised tags. Each tag gets
// exactly one leading '#'; blanks and repeats are dropped.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(s, ","))
}

// NormalizeTags normalises and de-duplicates tags, keeping first occurrence order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, raw := range tags {
		tag := normalizeTag(raw)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func normalizeTag(raw string) string {
	body := strings.TrimLeft(strings.TrimSpace(raw), "#")
	if body == "" {
		return ""
	}
	return "#" + body
}
