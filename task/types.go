// Package task implements a single-user to-do list persisted as a JSON file.
//
// Tasks are stored as a JSON array of records. The collection is loaded once
// per invocation, mutated by at most one operation, and written back whole.
//
// The public API mirrors the CLI commands:
//   - Add, Update, Delete, Start, Finish for task lifecycle
//   - Show, List for querying
package task

// Status represents the state of a task.
type Status string

const (
	// StatusTodo indicates the task has not been started.
	StatusTodo Status = "todo"

	// StatusInProgress indicates the task is currently being worked on.
	StatusInProgress Status = "in-progress"

	// StatusDone indicates the task has been completed.
	StatusDone Status = "done"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Priority represents the importance of a task.
type Priority string

const (
	// PriorityLow is the default priority.
	PriorityLow Priority = "low"

	// PriorityMedium sits between low and high.
	PriorityMedium Priority = "medium"

	// PriorityHigh marks the most important tasks.
	PriorityHigh Priority = "high"
)

// ValidPriorities returns all valid priority values, lowest first.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// Rank returns the sort rank for a priority. Higher ranks are more important.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 0
	default:
		return -1
	}
}

// MaxDescriptionLength is the maximum number of characters in a new task description.
const MaxDescriptionLength = 500
