package task

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

var testEpoch = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

// newTestStore returns a store in a temp dir and the buffer its notices go to.
func newTestStore(t *testing.T) (*Store, *bytes.Buffer) {
	t.Helper()

	var notices bytes.Buffer
	logger := log.NewWithOptions(&notices, log.Options{Level: log.DebugLevel})
	path := filepath.Join(t.TempDir(), "tasks.json")
	return NewStore(path, StoreOptions{Logger: logger}), &notices
}

// writeTaskFile writes raw content to the store's path.
func writeTaskFile(t *testing.T, store *Store, content string) {
	t.Helper()

	if err := os.WriteFile(store.Path(), []byte(content), 0o644); err != nil {
		t.Fatalf("write task file: %v", err)
	}
}

func readTaskFile(t *testing.T, store *Store) []byte {
	t.Helper()

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read task file: %v", err)
	}
	return data
}

// steppingClock returns a clock that advances by step on every call.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	current := start.Add(-step)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func assertTasksEqual(t *testing.T, got, want []Task) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		assertTaskEqual(t, got[i], want[i])
	}
}

func assertTaskEqual(t *testing.T, got, want Task) {
	t.Helper()

	if got.ID != want.ID ||
		got.Description != want.Description ||
		got.Status != want.Status ||
		got.Priority != want.Priority ||
		got.DueDate != want.DueDate ||
		!got.CreatedAt.Equal(want.CreatedAt) ||
		!got.UpdatedAt.Equal(want.UpdatedAt) {
		t.Fatalf("task mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func mustNew(t *testing.T, id int, description string, opts NewOptions) Task {
	t.Helper()

	if opts.Now == nil {
		opts.Now = func() time.Time { return testEpoch }
	}
	created, err := New(id, description, opts)
	if err != nil {
		t.Fatalf("New(%d, %q): %v", id, description, err)
	}
	return created
}
