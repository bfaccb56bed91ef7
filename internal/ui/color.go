package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	priorityHighStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	priorityMediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	priorityLowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	statusDoneStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	statusInProgressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))

	labelStyle = lipgloss.NewStyle().Bold(true)
)

// ColorEnabled reports whether stdout should receive ANSI styling.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Palette styles task fields. A disabled palette returns its input unchanged.
type Palette struct {
	enabled bool
}

// NewPalette returns a palette that styles output only when enabled is true.
func NewPalette(enabled bool) Palette {
	return Palette{enabled: enabled}
}

// Priority colors a priority name: high red, medium yellow, low dim.
func (p Palette) Priority(priority string) string {
	if !p.enabled {
		return priority
	}
	switch priority {
	case "high":
		return priorityHighStyle.Render(priority)
	case "medium":
		return priorityMediumStyle.Render(priority)
	case "low":
		return priorityLowStyle.Render(priority)
	default:
		return priority
	}
}

// Status colors a status name.
func (p Palette) Status(status string) string {
	if !p.enabled {
		return status
	}
	switch status {
	case "done":
		return statusDoneStyle.Render(status)
	case "in-progress":
		return statusInProgressStyle.Render(status)
	default:
		return status
	}
}

// Label emphasizes a field label in detail views.
func (p Palette) Label(label string) string {
	if !p.enabled {
		return label
	}
	return labelStyle.Render(label)
}
