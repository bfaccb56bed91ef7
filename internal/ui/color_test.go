package ui

import (
	"strings"
	"testing"
)

func TestColorEnabledHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ColorEnabled() {
		t.Fatal("expected NO_COLOR to disable color")
	}
}

func TestColorEnabledHonorsDumbTerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "dumb")
	if ColorEnabled() {
		t.Fatal("expected TERM=dumb to disable color")
	}
}

func TestDisabledPaletteReturnsInput(t *testing.T) {
	palette := NewPalette(false)

	for _, value := range []string{"high", "medium", "low", "unknown"} {
		if got := palette.Priority(value); got != value {
			t.Fatalf("Priority(%q) = %q, want unchanged", value, got)
		}
	}
	if got := palette.Status("done"); got != "done" {
		t.Fatalf("Status(done) = %q, want unchanged", got)
	}
	if got := palette.Label("ID:"); got != "ID:" {
		t.Fatalf("Label = %q, want unchanged", got)
	}
}

func TestEnabledPaletteKeepsText(t *testing.T) {
	palette := NewPalette(true)

	if got := palette.Priority("high"); !strings.Contains(got, "high") {
		t.Fatalf("expected styled priority to contain text, got %q", got)
	}
	if got := palette.Status("in-progress"); !strings.Contains(got, "in-progress") {
		t.Fatalf("expected styled status to contain text, got %q", got)
	}
}
