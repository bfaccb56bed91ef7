package task

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestStore_LoadMissingFile(t *testing.T) {
	store, notices := newTestStore(t)

	tasks, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty collection, got %d tasks", len(tasks))
	}
	if !strings.Contains(notices.String(), "not found. Starting with an empty list.") {
		t.Fatalf("expected not-found notice, got %q", notices.String())
	}
	if _, err := os.Stat(store.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("expected Load not to create the task file")
	}
}

func TestStore_LoadEmptyOrInvalidJSON(t *testing.T) {
	for _, content := range []string{"", "   \n", "{not json", "[1, 2"} {
		t.Run(content, func(t *testing.T) {
			store, notices := newTestStore(t)
			writeTaskFile(t, store, content)

			tasks, err := store.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(tasks) != 0 {
				t.Fatalf("expected empty collection, got %d tasks", len(tasks))
			}
			if !strings.Contains(notices.String(), "is empty or contains invalid JSON") {
				t.Fatalf("expected invalid JSON notice, got %q", notices.String())
			}
		})
	}
}

func TestStore_LoadUnreadable(t *testing.T) {
	store, notices := newTestStore(t)
	if err := os.Mkdir(store.Path(), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	tasks, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty collection, got %d tasks", len(tasks))
	}
	if !strings.Contains(notices.String(), "An I/O error occurred") {
		t.Fatalf("expected I/O notice, got %q", notices.String())
	}
}

func TestStore_LoadWrongShape(t *testing.T) {
	tests := []struct {
		name    string
		content string
		path    string
	}{
		{"object root", `{"id": 1}`, ""},
		{"string root", `"tasks"`, ""},
		{"non-object item", `[1]`, "/0"},
		{"bad status", `[{"id":1,"description":"x","status":"blocked","created_at":"2025-03-01T09:30:00Z","updated_at":"2025-03-01T09:30:00Z"}]`, "/0/status"},
		{"bad priority", `[{"id":1,"description":"x","status":"todo","priority":"urgent","created_at":"2025-03-01T09:30:00Z","updated_at":"2025-03-01T09:30:00Z"}]`, "/0/priority"},
		{"string id", `[{"id":"1","description":"x","status":"todo","created_at":"2025-03-01T09:30:00Z","updated_at":"2025-03-01T09:30:00Z"}]`, "/0/id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestStore(t)
			writeTaskFile(t, store, tt.content)

			tasks, err := store.Load()
			if !errors.Is(err, ErrSchema) {
				t.Fatalf("expected ErrSchema, got %v", err)
			}
			if tasks != nil {
				t.Fatalf("expected no tasks, got %v", tasks)
			}
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %T", err)
			}
			if schemaErr.Path != tt.path {
				t.Fatalf("expected path %q, got %q (%v)", tt.path, schemaErr.Path, err)
			}
		})
	}
}

func TestStore_LoadMissingField(t *testing.T) {
	store, _ := newTestStore(t)
	writeTaskFile(t, store, `[
    {"id": 1, "description": "ok", "status": "todo", "created_at": "2025-03-01T09:30:00Z", "updated_at": "2025-03-01T09:30:00Z"},
    {"id": 2, "status": "todo", "created_at": "2025-03-01T09:30:00Z", "updated_at": "2025-03-01T09:30:00Z"}
]`)

	tasks, err := store.Load()
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if tasks != nil {
		t.Fatalf("expected load to abort, got %v", tasks)
	}
	if !strings.Contains(err.Error(), "record 1") {
		t.Fatalf("expected failing record index in error, got %q", err.Error())
	}
}

func TestStore_LoadLegacyRecord(t *testing.T) {
	store, _ := newTestStore(t)
	writeTaskFile(t, store, `[{"id": 1, "description": "old", "status": "done", "created_at": "2024-05-01T10:00:00.123456", "updated_at": "2024-05-01T11:00:00.5"}]`)

	tasks, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Priority != PriorityLow || tasks[0].HasDueDate() {
		t.Fatalf("expected defaults for absent fields, got %+v", tasks[0])
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	for _, count := range []int{0, 1, 3} {
		store, _ := newTestStore(t)

		tasks := make([]Task, 0, count)
		priorities := []Priority{PriorityLow, PriorityHigh, PriorityMedium}
		for i := 0; i < count; i++ {
			item := mustNew(t, i+1, "task", NewOptions{Priority: priorities[i%len(priorities)]})
			if i%2 == 0 {
				item.DueDate = "2025-04-15"
			}
			item.touch(testEpoch.Add(time.Duration(i) * time.Second))
			tasks = append(tasks, item)
		}

		if err := store.Save(tasks); err != nil {
			t.Fatalf("Save(%d): %v", count, err)
		}
		loaded, err := store.Load()
		if err != nil {
			t.Fatalf("Load(%d): %v", count, err)
		}
		assertTasksEqual(t, loaded, tasks)
	}
}

func TestStore_SaveFormat(t *testing.T) {
	store, _ := newTestStore(t)
	task := mustNew(t, 1, "buy milk", NewOptions{})

	if err := store.Save([]Task{task}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	want := `[
    {
        "id": 1,
        "description": "buy milk",
        "status": "todo",
        "priority": "low",
        "due_date": null,
        "created_at": "2025-03-01T09:30:00Z",
        "updated_at": "2025-03-01T09:30:00Z"
    }
]
`
	if got := string(readTaskFile(t, store)); got != want {
		t.Fatalf("file content =\n%s\nwant\n%s", got, want)
	}
}

func TestStore_SaveNilWritesEmptyArray(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Save(nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := string(readTaskFile(t, store)); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestStore_SaveLeavesNoTempFile(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Save([]Task{mustNew(t, 1, "x", NewOptions{})}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(store.Path() + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected temp file to be gone, stat err = %v", err)
	}
}

func TestStore_SaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.json")
	store := NewStore(path, StoreOptions{Logger: log.New(os.Stderr)})

	if err := store.Save(nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected task file, got %v", err)
	}
}

func TestStore_SaveWriteError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	store := NewStore(filepath.Join(blocker, "tasks.json"), StoreOptions{})

	err := store.Save(nil)
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
}

func TestStore_LoadTakesNoLock(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.Save([]Task{mustNew(t, 1, "x", NewOptions{})}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := os.Remove(store.Path() + ".lock"); err != nil {
		t.Fatalf("remove lock file: %v", err)
	}

	if _, err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := os.Stat(store.Path() + ".lock"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected Load not to create a lock file, stat err = %v", err)
	}
}

func TestStore_LockUnavailable(t *testing.T) {
	store, _ := newTestStore(t)
	original := []Task{mustNew(t, 1, "keep me", NewOptions{})}
	if err := store.Save(original); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := os.Remove(store.Path() + ".lock"); err != nil {
		t.Fatalf("remove lock file: %v", err)
	}
	if err := os.Mkdir(store.Path()+".lock", 0o755); err != nil {
		t.Fatalf("mkdir lock path: %v", err)
	}
	before := readTaskFile(t, store)

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertTasksEqual(t, loaded, original)

	err = store.Save(append(loaded, mustNew(t, 2, "new", NewOptions{})))
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
	if after := readTaskFile(t, store); !bytes.Equal(before, after) {
		t.Fatalf("task file changed after failed save:\n%s\n->\n%s", before, after)
	}
}
