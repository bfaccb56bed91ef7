package task

import (
	"fmt"
	"time"
)

// DisplayTimeLayout is used when rendering timestamps for people.
const DisplayTimeLayout = "2006-01-02 15:04:05"

// Task represents a single to-do item.
type Task struct {
	// ID is a positive integer, unique within the collection and never reused.
	ID int

	// Description is the free-form text of the task (max 500 chars).
	Description string

	// Status is the current state of the task.
	Status Status

	// Priority is the importance level.
	Priority Priority

	// DueDate is free text; empty means no due date.
	DueDate string

	// CreatedAt is when the task was created.
	CreatedAt time.Time

	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time
}

// NewOptions configures a new task. Zero values select the defaults.
type NewOptions struct {
	// Status defaults to StatusTodo.
	Status Status

	// Priority defaults to PriorityLow.
	Priority Priority

	// DueDate defaults to no due date.
	DueDate string

	// Now supplies the creation time. Defaults to time.Now.
	Now func() time.Time
}

// New builds a task with the given identity and applies defaults from opts.
func New(id int, description string, opts NewOptions) (Task, error) {
	if err := ValidateID(id); err != nil {
		return Task{}, err
	}
	if err := ValidateDescription(description); err != nil {
		return Task{}, err
	}

	if opts.Status == "" {
		opts.Status = StatusTodo
	}
	if !opts.Status.IsValid() {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, opts.Status)
	}
	if opts.Priority == "" {
		opts.Priority = PriorityLow
	}
	if !opts.Priority.IsValid() {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidPriority, opts.Priority)
	}

	now := timestamp(clock(opts.Now))
	return Task{
		ID:          id,
		Description: description,
		Status:      opts.Status,
		Priority:    opts.Priority,
		DueDate:     opts.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// HasDueDate reports whether a due date is set.
func (t Task) HasDueDate() bool {
	return t.DueDate != ""
}

// String renders the task the way confirmation messages show it.
func (t Task) String() string {
	return fmt.Sprintf("%q (ID: %d) created at: %s", t.Description, t.ID, t.CreatedAt.Local().Format(DisplayTimeLayout))
}

// touch refreshes UpdatedAt, never moving it before CreatedAt.
func (t *Task) touch(now time.Time) {
	now = timestamp(now)
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.UpdatedAt = now
}

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}

// timestamp strips the monotonic reading and location so stored times
// compare equal after a round trip through the file.
func timestamp(t time.Time) time.Time {
	return t.Round(0).UTC()
}
