// Package task defines the dated tasks shown on the calendar and the
// operations that arrange them into days, weeks and months.
package task

import (
	"errors"
	"strings"
	"time"

	"github.com/javiermolinar/termini/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidStatus   = errors.New("status must be 'todo' or 'done'")
	ErrInvalidPriority = errors.New("priority must be 'low', 'medium' or 'high'")
)

// Domain errors.
var (
	ErrTaskNotFound = errors.New("task not found")
)

// Status represents the state of a task.
type Status string

const (
	StatusTodo Status = "todo"
	StatusDone Status = "done"
)

// Priority is an informational ranking carried for display.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is a dated item on the calendar. Only ID and DueDate are interpreted
// by the calendar; the remaining fields are carried through for display.
type Task struct {
	ID           string
	Title        string
	DueDate      dateutil.Date
	Practice     string // case or file reference
	Client       string
	Counterparty string
	Category     string // term category name, free text for manual tasks
	Priority     Priority
	Status       Status
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New creates a todo Task with validation. priority may be empty
// (defaults to medium).
func New(title string, due dateutil.Date, priority string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if due.IsZero() {
		return nil, dateutil.ErrInvalidDate
	}

	p, err := ParsePriority(priority)
	if err != nil {
		return nil, err
	}

	return &Task{
		Title:    title,
		DueDate:  due,
		Priority: p,
		Status:   StatusTodo,
	}, nil
}

// ParsePriority parses a priority name. The empty string is medium.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(s)) {
	case "", PriorityMedium:
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	case PriorityHigh:
		return PriorityHigh, nil
	default:
		return "", ErrInvalidPriority
	}
}

// ParseStatus parses a status name.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(s)) {
	case StatusTodo:
		return StatusTodo, nil
	case StatusDone:
		return StatusDone, nil
	default:
		return "", ErrInvalidStatus
	}
}

// IsOpen returns true if the task still has to be done.
func (t *Task) IsOpen() bool {
	return t.Status != StatusDone
}

// IsOverdue reports whether an open task is due before today.
func (t *Task) IsOverdue(today dateutil.Date) bool {
	return t.IsOpen() && t.DueDate.Before(today)
}

// Clone returns a shallow copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}
