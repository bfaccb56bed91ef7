package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	internalstrings "github.com/amonks/taskcli/internal/strings"
	"github.com/amonks/taskcli/internal/ui"
	"github.com/amonks/taskcli/task"
)

// printTaskTable prints tasks in a table format.
func printTaskTable(w io.Writer, tasks []task.Task, palette ui.Palette, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	fmt.Fprint(w, formatTaskTable(tasks, palette, now))
}

func formatTaskTable(tasks []task.Task, palette ui.Palette, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "PRI", "STATUS", "DUE", "AGE", "DESCRIPTION"}, len(tasks))

	for _, t := range tasks {
		builder.AddRow([]string{
			strconv.Itoa(t.ID),
			palette.Priority(string(t.Priority)),
			palette.Status(string(t.Status)),
			formatDueDate(t),
			ui.FormatTimeAgeShort(t.CreatedAt, now),
			ui.TruncateTableCell(internalstrings.NormalizeWhitespace(t.Description)),
		})
	}

	return builder.String()
}

func formatDueDate(t task.Task) string {
	if !t.HasDueDate() {
		return "-"
	}
	return ui.TruncateTableCell(t.DueDate)
}
