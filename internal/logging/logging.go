// Package logging builds the logger used for user-facing notices.
package logging

import (
	"fmt"
	"io"

	internalstrings "github.com/amonks/taskcli/internal/strings"
	"github.com/charmbracelet/log"
)

// Options configures a logger.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
}

// New returns a text logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:     level,
		Formatter: log.TextFormatter,
	}), nil
}

// ParseLevel parses a level name. Empty input selects info.
func ParseLevel(value string) (log.Level, error) {
	value = internalstrings.NormalizeLowerTrimSpace(value)
	if value == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(value)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", value, err)
	}
	return level, nil
}
