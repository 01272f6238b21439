package types

import (
	"errors"
	"fmt"
)

// Error categories. Every engine failure wraps exactly one of these so the
// presentation layer can decide how to surface it with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicate    = errors.New("already exists")
	ErrValidation   = errors.New("invalid value")
	ErrInsufficient = errors.New("insufficient resources")
)

// Lookup errors.
var (
	ErrTaskNotFound    = fmt.Errorf("task %w", ErrNotFound)
	ErrGroupNotFound   = fmt.Errorf("group %w", ErrNotFound)
	ErrGoalNotFound    = fmt.Errorf("goal %w", ErrNotFound)
	ErrThemeNotFound   = fmt.Errorf("theme %w", ErrNotFound)
	ErrSubTaskNotFound = fmt.Errorf("sub-task %w", ErrNotFound)
)

// Namespace collisions.
var (
	ErrGroupExists   = fmt.Errorf("group %w", ErrDuplicate)
	ErrGoalExists    = fmt.Errorf("goal %w", ErrDuplicate)
	ErrTaskExists    = fmt.Errorf("task %w", ErrDuplicate)
	ErrThemeUnlocked = fmt.Errorf("theme %w", ErrDuplicate)
)

// Validation errors.
var (
	ErrInvalidName       = fmt.Errorf("%w: name must not be empty", ErrValidation)
	ErrInvalidDueDate    = fmt.Errorf("%w: due date must use YYYY-MM-DD HH:MM", ErrValidation)
	ErrInvalidPriority   = fmt.Errorf("%w: priority must be low, medium or high", ErrValidation)
	ErrInvalidStatus     = fmt.Errorf("%w: status must be pending or done", ErrValidation)
	ErrInvalidRecurrence = fmt.Errorf("%w: recurrence must be daily, weekly or monthly", ErrValidation)
	ErrInvalidPosition   = fmt.Errorf("%w: sub-task position out of range", ErrValidation)
	ErrInvalidTimestamp  = fmt.Errorf("%w: malformed timestamp", ErrValidation)
	ErrTaskArchived      = fmt.Errorf("%w: task is already completed", ErrValidation)
	ErrThemeLocked       = fmt.Errorf("%w: theme is not unlocked", ErrValidation)
	ErrTooManyPriorities = fmt.Errorf("%w: too many daily priorities", ErrValidation)
	ErrInvalidThreshold  = fmt.Errorf("%w: threshold must not be negative", ErrValidation)
	ErrInvalidSort       = fmt.Errorf("%w: sort must be priority or due_date", ErrValidation)
)

// Resource errors.
var (
	ErrNotEnoughPoints = fmt.Errorf("%w: not enough points", ErrInsufficient)
)
