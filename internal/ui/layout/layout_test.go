package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestHeaderKeepsTitleAndStatusOnOneRow(t *testing.T) {
	h := Header("Working Memory", "Trial 3/5", 100)
	if got := lipgloss.Height(h); got != 3 {
		t.Fatalf("header height = %d, want 3 (one row plus border)", got)
	}
	for _, want := range []string{"Memoriz", "Working Memory", "Trial 3/5"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestFrameFillsTerminal(t *testing.T) {
	header := Header("Home", "", 90)
	footer := Footer([]KeyHint{{Key: "Esc", Description: "Back"}}, 90)
	out := Frame(header, "body", footer, 90, 30)

	if got := lipgloss.Height(out); got != 30 {
		t.Errorf("frame height = %d, want 30", got)
	}
	if got := ContentHeight(header, footer, 30); got != 24 {
		t.Errorf("content height = %d, want 24", got)
	}
}

func TestSizeThresholds(t *testing.T) {
	if !TooSmall(79, 40) || !TooSmall(120, 23) || TooSmall(80, 24) {
		t.Error("TooSmall thresholds wrong")
	}
	if !Compact(99, 40) || !Compact(120, 20) || Compact(120, 30) {
		t.Error("Compact thresholds wrong")
	}
	if !strings.Contains(TooSmallMessage(60, 20), "80 x 24") {
		t.Error("resize message should name the minimum size")
	}
}
