package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/taskcli/internal/markdown"
	"github.com/amonks/taskcli/internal/ui"
	"github.com/amonks/taskcli/task"
)

const (
	taskDetailLineWidth   = 80
	taskDetailIndent      = 2
	taskDetailLabelLength = len("Priority:")
)

// formatTaskDetail renders a single task for the show command.
func formatTaskDetail(t task.Task, palette ui.Palette, renderMarkdown bool, now time.Time) string {
	var builder strings.Builder
	field := func(label, value string) {
		padded := fmt.Sprintf("%-*s", taskDetailLabelLength, label+":")
		fmt.Fprintf(&builder, "%s %s\n", palette.Label(padded), value)
	}

	due := "-"
	if t.HasDueDate() {
		due = t.DueDate
	}

	field("ID", strconv.Itoa(t.ID))
	field("Status", palette.Status(string(t.Status)))
	field("Priority", palette.Priority(string(t.Priority)))
	field("Due", due)
	field("Created", fmt.Sprintf("%s (%s)", t.CreatedAt.Local().Format(task.DisplayTimeLayout), ui.FormatTimeAgo(t.CreatedAt, now)))
	field("Updated", fmt.Sprintf("%s (%s)", t.UpdatedAt.Local().Format(task.DisplayTimeLayout), ui.FormatTimeAgo(t.UpdatedAt, now)))

	fmt.Fprintf(&builder, "\n%s\n%s\n", palette.Label("Description:"), formatTaskDescription(t.Description, renderMarkdown))
	return builder.String()
}

func formatTaskDescription(value string, renderMarkdown bool) string {
	var formatted string
	if renderMarkdown {
		formatted = markdown.Render(taskDetailLineWidth, taskDetailIndent, value)
	} else {
		formatted = markdown.Wrap(taskDetailLineWidth, taskDetailIndent, value)
	}
	if strings.TrimSpace(formatted) == "" {
		return strings.Repeat(" ", taskDetailIndent) + "-"
	}
	return formatted
}
