package task

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
)

const (
	lockTimeout       = 3 * time.Second
	lockRetryInterval = 100 * time.Millisecond
)

// Store reads and writes the task file at a fixed path.
type Store struct {
	path   string
	logger *log.Logger
}

// StoreOptions configures a Store.
type StoreOptions struct {
	// Logger receives notices about recovered load conditions.
	// If nil, log.Default() is used.
	Logger *log.Logger
}

// NewStore returns a store for the task file at path.
func NewStore(path string, opts StoreOptions) *Store {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Store{path: path, logger: opts.Logger}
}

// Path returns the task file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the full collection.
//
// A missing, empty, unparseable, or unreadable file yields an empty
// collection and a logged notice. A file of the wrong shape fails with a
// *SchemaError, and a record without a required key fails with a
// *MissingFieldError; in both cases no tasks are returned.
//
// Load takes no lock: Save replaces the file by rename, so a reader sees
// either the old or the new content.
func (s *Store) Load() ([]Task, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Infof("%s not found. Starting with an empty list.", s.path)
		return []Task{}, nil
	}
	if err != nil {
		s.logger.Error(fmt.Sprintf("An I/O error occurred while trying to read the file %s.", s.path), "err", err)
		return []Task{}, nil
	}

	if len(bytes.TrimSpace(data)) == 0 || !json.Valid(data) {
		s.logger.Warnf("%s is empty or contains invalid JSON. Starting with an empty list.", s.path)
		return []Task{}, nil
	}

	return decodeTasks(data)
}

func decodeTasks(data []byte) ([]Task, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode task file: %w", err)
	}

	if _, ok := doc.([]any); !ok {
		return nil, &SchemaError{Message: fmt.Sprintf("expected an array of task records, got %s", jsonKind(doc))}
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	items := doc.([]any)
	tasks := make([]Task, 0, len(items))
	for i, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			return nil, &SchemaError{Path: fmt.Sprintf("/%d", i), Message: "expected an object"}
		}
		t, err := FromRecord(Record(record))
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Save overwrites the task file with the full collection.
// The previous file is replaced only once the new content is fully written.
func (s *Store) Save(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerialize, err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: create parent dir: %w", ErrWrite, err)
	}

	err = s.withWriteLock(func() error {
		return writeFileAtomic(s.path, data)
	})
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, s.path, err)
	}
	return nil
}

// withWriteLock executes fn while holding an exclusive lock on the task
// file's lock file, so two saves never write the temp file at once.
func (s *Store) withWriteLock(fn func() error) error {
	lock := flock.New(s.path + ".lock")

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire lock on %s", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

// writeFileAtomic writes data to a temp file next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

func jsonKind(value any) string {
	switch value.(type) {
	case map[string]any:
		return "an object"
	case string:
		return "a string"
	case json.Number, float64:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", value)
	}
}
