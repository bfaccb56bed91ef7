// Package main implements the task-cli tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/amonks/taskcli/internal/config"
	"github.com/amonks/taskcli/internal/logging"
	"github.com/amonks/taskcli/internal/paths"
	"github.com/amonks/taskcli/internal/ui"
	"github.com/amonks/taskcli/task"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "task-cli",
	Short:        "Track tasks in a local JSON file",
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runRoot,
}

// runRoot prints help when no command, or an unrecognized one, is given.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command %q\n", strings.Join(args, " "))
	}
	return cmd.Help()
}

// app bundles what a command needs after startup: the merged configuration,
// the loaded collection, and the output palette.
type app struct {
	config  *config.Config
	tracker *task.Tracker
	palette ui.Palette
}

// openApp loads configuration and the task collection for the working directory.
func openApp() (*app, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(os.Stderr, logging.Options{Level: cfg.Log.Level})
	if err != nil {
		return nil, err
	}

	store := task.NewStore(paths.Resolve(cwd, cfg.Storage.Path), task.StoreOptions{Logger: logger})
	tracker, err := task.Open(store, task.TrackerOptions{})
	if err != nil {
		return nil, err
	}

	return &app{
		config:  cfg,
		tracker: tracker,
		palette: ui.NewPalette(cfg.Display.Color && ui.ColorEnabled()),
	}, nil
}
