// Package listflags registers the filter flags shared by listing commands.
package listflags

import (
	"strings"

	"github.com/spf13/cobra"
)

// AddEnumFlag adds a string flag whose shell completion offers values.
func AddEnumFlag(cmd *cobra.Command, target *string, name, usage string, values []string) {
	usage = usage + " (" + strings.Join(values, ", ") + ")"
	cmd.Flags().StringVar(target, name, "", usage)
	_ = cmd.RegisterFlagCompletionFunc(name, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	})
}

// AddDueDateFlag adds the --due-date filter flag.
func AddDueDateFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "due-date", "", "Filter by exact due date")
}

// AddJSONFlag adds the --json output flag.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, "json", false, "Output as JSON")
}
