package app

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestViewFillsTerminal(t *testing.T) {
	m, _ := sizedTestModel(t)

	view := m.View()
	if got := lipgloss.Height(view); got != 22 {
		t.Fatalf("expected 22 rows, got %d", got)
	}
	for i, line := range strings.Split(view, "\n") {
		if w := lipgloss.Width(line); w != 81 {
			t.Fatalf("row %d width = %d, want 81", i, w)
		}
	}
}

func TestViewDrawsHandleAtControllerTop(t *testing.T) {
	m, _ := sizedTestModel(t)
	rows := strings.Split(m.View(), "\n")

	layout := m.calculateLayout()
	for y := 0; y < layout.ContentHeight; y++ {
		hasHandle := strings.Contains(rows[y], handleGlyph)
		inHandle := y >= layout.HandleTop && y < layout.HandleTop+layout.HandleHeight
		if hasHandle != inHandle {
			t.Fatalf("row %d: handle drawn=%v, want %v", y, hasHandle, inHandle)
		}
		if !inHandle && !strings.Contains(rows[y], dividerGlyph) {
			t.Fatalf("row %d: expected divider glyph", y)
		}
	}
}

func TestViewFooterShowsSplitAndHelp(t *testing.T) {
	m, _ := sizedTestModel(t)
	view := m.View()

	if !strings.Contains(view, "50% / 50%") {
		t.Fatal("expected split percentages in footer")
	}
	if !strings.Contains(view, "reset split") {
		t.Fatal("expected short help in footer")
	}
}

func TestViewBeforeWindowSize(t *testing.T) {
	m, _ := newTestModel(t, "", "")
	if got := m.View(); got != "Loading..." {
		t.Fatalf("expected loading placeholder, got %q", got)
	}
}
