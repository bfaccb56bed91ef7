package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/amonks/taskcli/task"
	"github.com/spf13/cobra"
)

func TestParseTaskID(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
	}

	for _, tt := range tests {
		got, err := parseTaskID(tt.input)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseTaskID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, task.ErrInvalidID) {
			t.Fatalf("parseTaskID(%q): expected ErrInvalidID, got %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("parseTaskID(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func newListFilterCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "list"}
	cmd.Flags().StringVar(&listStatus, "status", "", "")
	cmd.Flags().StringVar(&listDueDate, "due-date", "", "")
	addDueDateFlagAliases(cmd)
	return cmd
}

func TestListFilterFromFlagsUnset(t *testing.T) {
	cmd := newListFilterCommand()

	filter, err := listFilterFromFlags(cmd)
	if err != nil {
		t.Fatalf("listFilterFromFlags: %v", err)
	}
	if filter.Status != nil || filter.DueDate != nil {
		t.Fatalf("expected empty filter, got %+v", filter)
	}
}

func TestListFilterFromFlagsSet(t *testing.T) {
	cmd := newListFilterCommand()
	if err := cmd.Flags().Set("status", "In-Progress"); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if err := cmd.Flags().Set("due", ""); err != nil {
		t.Fatalf("set due: %v", err)
	}

	filter, err := listFilterFromFlags(cmd)
	if err != nil {
		t.Fatalf("listFilterFromFlags: %v", err)
	}
	if filter.Status == nil || *filter.Status != task.StatusInProgress {
		t.Fatalf("expected in-progress status filter, got %+v", filter.Status)
	}
	if filter.DueDate == nil || *filter.DueDate != "" {
		t.Fatalf("expected empty due date filter to be set, got %+v", filter.DueDate)
	}
}

func TestListFilterFromFlagsRejectsUnknownStatus(t *testing.T) {
	cmd := newListFilterCommand()
	if err := cmd.Flags().Set("status", "blocked"); err != nil {
		t.Fatalf("set status: %v", err)
	}

	if _, err := listFilterFromFlags(cmd); !errors.Is(err, task.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestAddPriorityDefaultsToLow(t *testing.T) {
	flag := addCmd.Flags().Lookup("priority")
	if flag == nil {
		t.Fatal("expected priority flag")
	}
	if flag.DefValue != "low" || flag.Shorthand != "p" {
		t.Fatalf("unexpected priority flag: default %q shorthand %q", flag.DefValue, flag.Shorthand)
	}
}

func TestReportNotFound(t *testing.T) {
	var stderr bytes.Buffer
	cmd := &cobra.Command{Use: "mark-done"}
	cmd.SetErr(&stderr)

	notFound := fmt.Errorf("%w: %d", task.ErrTaskNotFound, 99)
	if err := reportNotFound(cmd, notFound); err != nil {
		t.Fatalf("expected not-found to be reported without failing, got %v", err)
	}
	if stderr.String() != "Error: task not found: 99\n" {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}

	stderr.Reset()
	if err := reportNotFound(cmd, task.ErrSchema); !errors.Is(err, task.ErrSchema) {
		t.Fatalf("expected other errors to pass through, got %v", err)
	}
	if stderr.Len() != 0 {
		t.Fatalf("expected nothing on stderr, got %q", stderr.String())
	}
}
