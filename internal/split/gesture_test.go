package split

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTapDetectorFirstGestureAtZeroOffset(t *testing.T) {
	d := tapDetector{window: DefaultDoubleTapWindow}
	assert.Equal(t, ActionBeginDrag, d.observe(time.Time{}))
	assert.Equal(t, ActionResetView, d.observe(time.Time{}.Add(499*time.Millisecond)))
}

func TestTapDetectorRecordsEveryStart(t *testing.T) {
	d := tapDetector{window: DefaultDoubleTapWindow}
	d.observe(at(0))
	d.observe(at(900))
	assert.Equal(t, at(900), d.last)
	assert.Equal(t, ActionResetView, d.observe(at(1000)))
	assert.Equal(t, at(1000), d.last)
}

func TestBeginSessionSnapshotsGeometry(t *testing.T) {
	s := beginSession(
		DividerGeometry{Left: 12, Top: 3, Width: 1, Height: 3},
		PaneRatios{LeftWeight: 7, RightWeight: 5},
		at(42),
	)
	assert.True(t, s.active)
	assert.False(t, s.stale)
	assert.Equal(t, DragStart{DividerLeft: 12, LeftWeight: 7, RightWeight: 5}, s.start)
	assert.Equal(t, at(42), s.startedAt)
}
