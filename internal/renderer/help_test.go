package renderer

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/riv/internal/input/keymap"
)

func TestHelpLines(t *testing.T) {
	bindings := []keymap.Binding{
		{Keys: "j", Action: "next", Description: "Next image", Category: "Navigation"},
		{Keys: "Right", Action: "next", Category: "Navigation"},
		{Keys: "k", Action: "prev", Description: "Previous image", Category: "Navigation"},
		{Keys: "q", Action: "quit"},
	}

	got := HelpLines(bindings)
	want := []string{
		"Navigation",
		"  j, Right  Next image",
		"  k         Previous image",
		"",
		"Other",
		"  q  quit",
		"",
		"Counts",
		"  1-9  Repeat the next action (e.g. 25j)",
	}
	if len(got) != len(want) {
		t.Fatalf("HelpLines() = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHelpLinesDefaultKeymap(t *testing.T) {
	lines := HelpLines(keymap.DefaultKeymap().Bindings)
	text := strings.Join(lines, "\n")
	for _, want := range []string{"Navigation", "View", "j, Right", "Zoom in"} {
		if !strings.Contains(text, want) {
			t.Errorf("help text missing %q", want)
		}
	}
}

func TestFitLines(t *testing.T) {
	lines := []string{"short", "a much longer line of help", "third"}

	got := FitLines(lines, 10, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, l := range got {
		if runewidth.StringWidth(l) > 10 {
			t.Errorf("line %q wider than 10", l)
		}
	}
	if got[0] != "short" {
		t.Errorf("got[0] = %q", got[0])
	}
	if FitLines(lines, 0, 5) != nil {
		t.Error("zero width should give nil")
	}
}
