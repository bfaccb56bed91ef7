package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Record is the field-name keyed form of a task, as stored in the task file.
type Record map[string]any

// Record keys.
const (
	FieldID          = "id"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldDueDate     = "due_date"
	FieldCreatedAt   = "created_at"
	FieldUpdatedAt   = "updated_at"
)

// RequiredFields lists the keys every stored record must carry.
// Priority and due date default when absent.
func RequiredFields() []string {
	return []string{FieldID, FieldDescription, FieldStatus, FieldCreatedAt, FieldUpdatedAt}
}

// TimestampLayout is the layout used to persist timestamps.
const TimestampLayout = time.RFC3339Nano

// legacyTimestampLayout matches ISO-8601 timestamps written without an offset.
const legacyTimestampLayout = "2006-01-02T15:04:05.999999999"

// Record serializes the task to its stored form.
func (t Task) Record() Record {
	var dueDate any
	if t.HasDueDate() {
		dueDate = t.DueDate
	}
	return Record{
		FieldID:          t.ID,
		FieldDescription: t.Description,
		FieldStatus:      string(t.Status),
		FieldPriority:    string(t.Priority),
		FieldDueDate:     dueDate,
		FieldCreatedAt:   t.CreatedAt.Format(TimestampLayout),
		FieldUpdatedAt:   t.UpdatedAt.Format(TimestampLayout),
	}
}

// FromRecord deserializes a stored record.
func FromRecord(record Record) (Task, error) {
	for _, field := range RequiredFields() {
		if _, ok := record[field]; !ok {
			return Task{}, &MissingFieldError{Field: field}
		}
	}

	id, err := recordInt(record, FieldID)
	if err != nil {
		return Task{}, err
	}
	description, err := recordString(record, FieldDescription)
	if err != nil {
		return Task{}, err
	}
	statusValue, err := recordString(record, FieldStatus)
	if err != nil {
		return Task{}, err
	}
	status := Status(statusValue)
	if !status.IsValid() {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, statusValue)
	}

	priority := PriorityLow
	if _, ok := record[FieldPriority]; ok && record[FieldPriority] != nil {
		value, err := recordString(record, FieldPriority)
		if err != nil {
			return Task{}, err
		}
		priority = Priority(value)
		if !priority.IsValid() {
			return Task{}, fmt.Errorf("%w: %q", ErrInvalidPriority, value)
		}
	}

	var dueDate string
	if record[FieldDueDate] != nil {
		dueDate, err = recordString(record, FieldDueDate)
		if err != nil {
			return Task{}, err
		}
	}

	createdAt, err := recordTime(record, FieldCreatedAt)
	if err != nil {
		return Task{}, err
	}
	updatedAt, err := recordTime(record, FieldUpdatedAt)
	if err != nil {
		return Task{}, err
	}

	return Task{
		ID:          id,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// fileRecord fixes the key order of the stored form.
type fileRecord struct {
	ID          int      `json:"id"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	DueDate     *string  `json:"due_date"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// MarshalJSON encodes the task in its stored form.
func (t Task) MarshalJSON() ([]byte, error) {
	record := fileRecord{
		ID:          t.ID,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt.Format(TimestampLayout),
		UpdatedAt:   t.UpdatedAt.Format(TimestampLayout),
	}
	if t.HasDueDate() {
		dueDate := t.DueDate
		record.DueDate = &dueDate
	}
	return json.Marshal(record)
}

// UnmarshalJSON decodes a stored record, applying the same rules as FromRecord.
func (t *Task) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var record Record
	if err := decoder.Decode(&record); err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%w: expected an object", ErrInvalidRecord)
	}
	parsed, err := FromRecord(record)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func recordString(record Record, field string) (string, error) {
	value, ok := record[field].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidRecord, field, record[field])
	}
	return value, nil
}

func recordInt(record Record, field string) (int, error) {
	var value int
	switch raw := record[field].(type) {
	case int:
		value = raw
	case int64:
		value = int(raw)
	case float64:
		if raw != math.Trunc(raw) {
			return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidRecord, field, raw)
		}
		value = int(raw)
	case json.Number:
		parsed, err := raw.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer, got %s", ErrInvalidRecord, field, raw)
		}
		value = int(parsed)
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", ErrInvalidRecord, field, record[field])
	}
	if err := ValidateID(value); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return value, nil
}

func recordTime(record Record, field string) (time.Time, error) {
	value, err := recordString(record, field)
	if err != nil {
		return time.Time{}, err
	}
	return parseTimestamp(field, value)
}

func parseTimestamp(field, value string) (time.Time, error) {
	if parsed, err := time.Parse(TimestampLayout, value); err == nil {
		return timestamp(parsed), nil
	}
	parsed, err := time.ParseInLocation(legacyTimestampLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s is not an ISO-8601 timestamp: %q", ErrInvalidRecord, field, value)
	}
	return timestamp(parsed), nil
}
