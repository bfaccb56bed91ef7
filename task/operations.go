package task

import (
	"fmt"
	"time"
)

// Tracker holds the collection loaded for one invocation and applies
// operations to it. Every successful mutation saves the whole collection.
type Tracker struct {
	store *Store
	tasks []Task
	now   func() time.Time
}

// TrackerOptions configures a Tracker.
type TrackerOptions struct {
	// Now supplies the current time. Defaults to time.Now.
	Now func() time.Time
}

// Open loads the collection from store.
func Open(store *Store, opts TrackerOptions) (*Tracker, error) {
	tasks, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Tracker{store: store, tasks: tasks, now: now}, nil
}

// Tasks returns a copy of the loaded collection in stored order.
func (t *Tracker) Tasks() []Task {
	tasks := make([]Task, len(t.tasks))
	copy(tasks, t.tasks)
	return tasks
}

// Add creates a new task with the next ID and saves.
// opts.Status is ignored; new tasks always start as todo.
func (t *Tracker) Add(description string, opts NewOptions) (Task, error) {
	opts.Status = StatusTodo
	if opts.Now == nil {
		opts.Now = t.now
	}
	created, err := New(NextID(t.tasks), description, opts)
	if err != nil {
		return Task{}, err
	}

	tasks := append(t.Tasks(), created)
	if err := t.commit(tasks); err != nil {
		return Task{}, err
	}
	return created, nil
}

// Update replaces the description of a task and saves.
func (t *Tracker) Update(id int, description string) (Task, error) {
	if err := ValidateDescription(description); err != nil {
		return Task{}, err
	}
	return t.mutate(id, func(item *Task) {
		item.Description = description
	})
}

// Start marks a task as in progress and saves.
func (t *Tracker) Start(id int) (Task, error) {
	return t.setStatus(id, StatusInProgress)
}

// Finish marks a task as done and saves.
func (t *Tracker) Finish(id int) (Task, error) {
	return t.setStatus(id, StatusDone)
}

// Delete removes a task from the collection and saves.
// Its ID is not reused.
func (t *Tracker) Delete(id int) (Task, error) {
	index, err := t.find(id)
	if err != nil {
		return Task{}, err
	}

	removed := t.tasks[index]
	tasks := make([]Task, 0, len(t.tasks)-1)
	tasks = append(tasks, t.tasks[:index]...)
	tasks = append(tasks, t.tasks[index+1:]...)
	if err := t.commit(tasks); err != nil {
		return Task{}, err
	}
	return removed, nil
}

// Show returns a single task.
func (t *Tracker) Show(id int) (Task, error) {
	index, err := t.find(id)
	if err != nil {
		return Task{}, err
	}
	return t.tasks[index], nil
}

// List returns the tasks matching filter, highest priority first.
// It never modifies or saves the collection.
func (t *Tracker) List(filter ListFilter) ([]Task, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *filter.Status)
	}
	return Filter(SortByPriority(t.tasks), filter), nil
}

func (t *Tracker) setStatus(id int, status Status) (Task, error) {
	return t.mutate(id, func(item *Task) {
		item.Status = status
	})
}

func (t *Tracker) mutate(id int, apply func(*Task)) (Task, error) {
	index, err := t.find(id)
	if err != nil {
		return Task{}, err
	}

	tasks := t.Tasks()
	apply(&tasks[index])
	tasks[index].touch(t.now())
	if err := ValidateTask(&tasks[index]); err != nil {
		return Task{}, fmt.Errorf("validate task %d: %w", id, err)
	}

	if err := t.commit(tasks); err != nil {
		return Task{}, err
	}
	return tasks[index], nil
}

func (t *Tracker) find(id int) (int, error) {
	if err := ValidateID(id); err != nil {
		return -1, err
	}
	index, ok := FindByID(t.tasks, id)
	if !ok {
		return -1, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	return index, nil
}

// commit saves tasks and adopts them as the loaded collection.
func (t *Tracker) commit(tasks []Task) error {
	if err := t.store.Save(tasks); err != nil {
		return err
	}
	t.tasks = tasks
	return nil
}
