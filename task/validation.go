package task

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	internalstrings "github.com/amonks/taskcli/internal/strings"
	"github.com/amonks/taskcli/internal/validation"
)

var (
	// ErrEmptyDescription is returned when a task description is empty.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrDescriptionTooLong is returned when a description exceeds MaxDescriptionLength.
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")

	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidPriority is returned when an invalid priority is provided.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidID is returned when a task ID is not a positive integer.
	ErrInvalidID = errors.New("task ID must be a positive integer")

	// ErrTaskNotFound is returned when a task with the given ID doesn't exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrMissingField is returned when a stored record lacks a required key.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidRecord is returned when a stored record has a field of the wrong type.
	ErrInvalidRecord = errors.New("invalid task record")

	// ErrSchema is returned when the task file is valid JSON of the wrong shape.
	ErrSchema = errors.New("task file does not match schema")

	// ErrSerialize is returned when the collection cannot be encoded.
	ErrSerialize = errors.New("serialize tasks")

	// ErrWrite is returned when the task file cannot be written.
	ErrWrite = errors.New("write task file")
)

// MissingFieldError reports the key a stored record was missing.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingField, e.Field)
}

// Unwrap returns ErrMissingField.
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// SchemaError describes where in the task file the schema check failed.
type SchemaError struct {
	// Path is the JSON pointer to the offending value ("" for the root).
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	location := e.Path
	if location == "" {
		location = "/"
	}
	return fmt.Sprintf("%s: %s: %s", ErrSchema, location, e.Message)
}

// Unwrap returns ErrSchema.
func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

// ValidateDescription checks a description supplied by the user.
// Length is counted in characters, not bytes.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	if length := utf8.RuneCountInString(description); length > MaxDescriptionLength {
		return fmt.Errorf("%w: %d > %d", ErrDescriptionTooLong, length, MaxDescriptionLength)
	}
	return nil
}

// ValidateID checks that id can identify a task.
func ValidateID(id int) error {
	if id < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidID, id)
	}
	return nil
}

// ParseStatus normalizes user input into a Status.
func ParseStatus(input string) (Status, error) {
	status := Status(internalstrings.NormalizeLowerTrimSpace(input))
	if !status.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidStatus, Status(input), ValidStatuses())
	}
	return status, nil
}

// ParsePriority normalizes user input into a Priority.
func ParsePriority(input string) (Priority, error) {
	priority := Priority(internalstrings.NormalizeLowerTrimSpace(input))
	if !priority.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidPriority, Priority(input), ValidPriorities())
	}
	return priority, nil
}

// ValidateTask checks the invariants a stored task must keep.
// Descriptions are not checked here; stored ones are free-form text and
// new ones go through ValidateDescription.
func ValidateTask(t *Task) error {
	if err := ValidateID(t.ID); err != nil {
		return err
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return fmt.Errorf("task %d: updated_at precedes created_at", t.ID)
	}
	return nil
}
