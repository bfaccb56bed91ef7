package task

import "sort"

// NextID returns the identifier for a new task: one more than the largest
// existing ID, or 1 for an empty collection. IDs are never reused.
func NextID(tasks []Task) int {
	maxID := 0
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

// FindByID returns the index of the task with the given ID.
func FindByID(tasks []Task, id int) (int, bool) {
	for i := range tasks {
		if tasks[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// SortByPriority returns a copy of tasks ordered high, medium, low.
// Tasks with equal priority keep their relative order.
func SortByPriority(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority.Rank() > sorted[j].Priority.Rank()
	})
	return sorted
}

// ListFilter configures which tasks to return.
type ListFilter struct {
	// Status filters by exact status match.
	Status *Status

	// DueDate filters by exact due date match.
	DueDate *string
}

// Matches reports whether a task passes every set filter.
func (f ListFilter) Matches(t Task) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.DueDate != nil && t.DueDate != *f.DueDate {
		return false
	}
	return true
}

// Filter returns the tasks matching the filter, preserving order.
func Filter(tasks []Task, filter ListFilter) []Task {
	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Matches(t) {
			result = append(result, t)
		}
	}
	return result
}
