package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/amonks/taskcli/task"
	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce   sync.Once
	taskCLIPath string
	buildErr    error
)

// BuildTaskCLI builds the task-cli binary once and returns its path.
func BuildTaskCLI(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "task-cli-bin-")
		if err != nil {
			buildErr = err
			return
		}

		taskCLIPath = filepath.Join(binDir, "task-cli")
		cmd := exec.Command("go", "build", "-o", taskCLIPath, "./cmd/task-cli")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build task-cli: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return taskCLIPath
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("TASK_CLI", BuildTaskCLI(t))
	env.Setenv("NO_COLOR", "1")

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdTaskID finds a task by description in a task file and stores its ID in an env var.
func CmdTaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("taskid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: taskid FILE DESCRIPTION VAR")
	}

	var items []task.Task
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		ts.Fatalf("parse task list: %v", err)
	}

	description := args[1]
	for _, item := range items {
		if item.Description == description {
			ts.Setenv(args[2], strconv.Itoa(item.ID))
			return
		}
	}

	ts.Fatalf("task with description %q not found", description)
}

// CmdTaskField asserts that the task with the given ID has field set to value
// in a task file.
func CmdTaskField(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 4 {
		ts.Fatalf("usage: taskfield FILE ID FIELD VALUE")
	}

	id, err := strconv.Atoi(args[1])
	if err != nil {
		ts.Fatalf("invalid id %q: %v", args[1], err)
	}

	var items []task.Task
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		ts.Fatalf("parse task list: %v", err)
	}

	index, ok := task.FindByID(items, id)
	if !ok {
		ts.Fatalf("task %d not found", id)
	}

	record := items[index].Record()
	value, ok := record[args[2]]
	if !ok {
		ts.Fatalf("unknown field %q", args[2])
	}

	got := fmt.Sprint(value)
	if value == nil {
		got = "null"
	}
	if (got == args[3]) == neg {
		if neg {
			ts.Fatalf("task %d: %s unexpectedly %q", id, args[2], got)
		}
		ts.Fatalf("task %d: expected %s %q, got %q", id, args[2], args[3], got)
	}
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
