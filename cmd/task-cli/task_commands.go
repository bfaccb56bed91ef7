package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/amonks/taskcli/internal/listflags"
	"github.com/amonks/taskcli/task"
	"github.com/spf13/cobra"
)

// add
var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var (
	addPriority string
	addDueDate  string
)

// update
var updateCmd = &cobra.Command{
	Use:   "update <id> <description>",
	Short: "Replace a task's description",
	Args:  cobra.ExactArgs(2),
	RunE:  runUpdate,
}

// delete
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

// mark-in-progress
var markInProgressCmd = &cobra.Command{
	Use:   "mark-in-progress <id>",
	Short: "Mark a task as in progress",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarkInProgress,
}

// mark-done
var markDoneCmd = &cobra.Command{
	Use:   "mark-done <id>",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarkDone,
}

// list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, highest priority first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var (
	listStatus  string
	listDueDate string
	listJSON    bool
)

// show
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show detailed information about a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showJSON bool

func init() {
	rootCmd.AddCommand(addCmd, updateCmd, deleteCmd, markInProgressCmd, markDoneCmd, listCmd, showCmd)

	// add flags
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", string(task.PriorityLow), "Priority (low, medium, high)")
	addCmd.Flags().StringVar(&addDueDate, "due-date", "", "Due date (free text)")
	_ = addCmd.RegisterFlagCompletionFunc("priority", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return priorityNames(), cobra.ShellCompDirectiveNoFileComp
	})

	// list flags
	listflags.AddEnumFlag(listCmd, &listStatus, "status", "Filter by status", statusNames())
	listflags.AddDueDateFlag(listCmd, &listDueDate)
	listflags.AddJSONFlag(listCmd, &listJSON)

	// show flags
	listflags.AddJSONFlag(showCmd, &showJSON)

	addDueDateFlagAliases(addCmd, listCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	priority, err := task.ParsePriority(addPriority)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}

	created, err := a.tracker.Add(args[0], task.NewOptions{
		Priority: priority,
		DueDate:  addDueDate,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Task added successfully: %s\n", created)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}

	updated, err := a.tracker.Update(id, args[1])
	if err != nil {
		return reportNotFound(cmd, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Task updated successfully: %s\n", updated)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}

	removed, err := a.tracker.Delete(id)
	if err != nil {
		return reportNotFound(cmd, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Task deleted successfully: %s\n", removed)
	return nil
}

func runMarkInProgress(cmd *cobra.Command, args []string) error {
	return runStatusChange(cmd, args[0], (*task.Tracker).Start, "Task marked as in progress")
}

func runMarkDone(cmd *cobra.Command, args []string) error {
	return runStatusChange(cmd, args[0], (*task.Tracker).Finish, "Task marked as done")
}

func runStatusChange(cmd *cobra.Command, arg string, change func(*task.Tracker, int) (task.Task, error), message string) error {
	id, err := parseTaskID(arg)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}

	changed, err := change(a.tracker, id)
	if err != nil {
		return reportNotFound(cmd, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", message, changed)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := listFilterFromFlags(cmd)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}

	tasks, err := a.tracker.List(filter)
	if err != nil {
		return err
	}

	if listJSON {
		return encodeJSON(cmd.OutOrStdout(), tasks)
	}

	printTaskTable(cmd.OutOrStdout(), tasks, a.palette, time.Now())
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}

	item, err := a.tracker.Show(id)
	if err != nil {
		return reportNotFound(cmd, err)
	}

	if showJSON {
		return encodeJSON(cmd.OutOrStdout(), item)
	}

	fmt.Fprint(cmd.OutOrStdout(), formatTaskDetail(item, a.palette, a.config.Display.Markdown, time.Now()))
	return nil
}

// listFilterFromFlags builds a filter from the flags the user actually set.
func listFilterFromFlags(cmd *cobra.Command) (task.ListFilter, error) {
	var filter task.ListFilter
	if cmd.Flags().Changed("status") {
		status, err := task.ParseStatus(listStatus)
		if err != nil {
			return task.ListFilter{}, err
		}
		filter.Status = &status
	}
	if cmd.Flags().Changed("due-date") {
		dueDate := listDueDate
		filter.DueDate = &dueDate
	}
	return filter, nil
}

// reportNotFound prints an unknown task ID to stderr and lets the command
// succeed. Other errors are returned unchanged.
func reportNotFound(cmd *cobra.Command, err error) error {
	if errors.Is(err, task.ErrTaskNotFound) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return nil
	}
	return err
}

// parseTaskID parses a task ID argument.
func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", task.ErrInvalidID, arg)
	}
	if err := task.ValidateID(id); err != nil {
		return 0, err
	}
	return id, nil
}

func statusNames() []string {
	statuses := task.ValidStatuses()
	names := make([]string, len(statuses))
	for i, status := range statuses {
		names[i] = string(status)
	}
	return names
}

func priorityNames() []string {
	priorities := task.ValidPriorities()
	names := make([]string, len(priorities))
	for i, priority := range priorities {
		names[i] = string(priority)
	}
	return names
}
