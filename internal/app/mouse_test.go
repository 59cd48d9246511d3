package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestMouseThrottleDropsRapidMotionOnly(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	throttle := NewMouseThrottle()
	throttle.now = func() time.Time { return now }

	motionMsg := tea.MouseMsg{X: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
	pressMsg := tea.MouseMsg{X: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	releaseMsg := tea.MouseMsg{X: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	wheelMsg := tea.MouseMsg{X: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}

	if throttle.Filter(nil, motionMsg) == nil {
		t.Fatal("expected first motion to pass")
	}
	now = now.Add(5 * time.Millisecond)
	if throttle.Filter(nil, motionMsg) != nil {
		t.Fatal("expected rapid motion to be dropped")
	}
	if throttle.Filter(nil, wheelMsg) != nil {
		t.Fatal("expected rapid wheel to be dropped")
	}
	if throttle.Filter(nil, pressMsg) == nil || throttle.Filter(nil, releaseMsg) == nil {
		t.Fatal("expected press and release to always pass")
	}
	if throttle.Filter(nil, tea.KeyMsg{Type: tea.KeyTab}) == nil {
		t.Fatal("expected non-mouse messages to pass")
	}
	now = now.Add(MouseMotionInterval)
	if throttle.Filter(nil, motionMsg) == nil {
		t.Fatal("expected motion after the interval to pass")
	}
}
