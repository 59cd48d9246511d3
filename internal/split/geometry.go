package split

import (
	"fmt"
	"math"
)

// ViewportSize is the current bounds of the container hosting both panes.
type ViewportSize struct {
	Width  float64
	Height float64
}

// Validate rejects non-finite or negative dimensions.
func (v ViewportSize) Validate() error {
	return validateDimensions("viewport", v.Width, v.Height)
}

// DividerSize is the fixed visual size of the divider.
type DividerSize struct {
	Width  float64
	Height float64
}

// Validate rejects non-finite or negative dimensions.
func (d DividerSize) Validate() error {
	return validateDimensions("divider", d.Width, d.Height)
}

// DividerGeometry is the frame of the divider. Width and Height never change
// for a controller; Left and Top move.
type DividerGeometry struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// PaneRatios are the proportional-sizing weights of the two panes.
type PaneRatios struct {
	LeftWeight  float64
	RightWeight float64
}

// Sum returns the total weight. Drags conserve it.
func (r PaneRatios) Sum() float64 {
	return r.LeftWeight + r.RightWeight
}

// Fraction returns the left pane's share of the total, bounded to [0, 1].
// Unclamped drags can push one weight negative; hosts that size panes from
// the weights see the collapsed pane at zero rather than a negative width.
func (r PaneRatios) Fraction() float64 {
	sum := r.Sum()
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return 0.5
	}
	f := r.LeftWeight / sum
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// DragStart is the snapshot a drag is measured against.
type DragStart struct {
	DividerLeft float64
	LeftWeight  float64
	RightWeight float64
}

// WeightBasis selects the unit the even split is expressed in.
type WeightBasis int

const (
	// WeightBasisUnit seeds both weights with 1.
	WeightBasisUnit WeightBasis = iota
	// WeightBasisViewport seeds each weight with half the viewport width, so
	// a drag of dx moves exactly dx units of width between the panes.
	WeightBasisViewport
)

func (b WeightBasis) String() string {
	switch b {
	case WeightBasisUnit:
		return "unit"
	case WeightBasisViewport:
		return "viewport"
	default:
		return fmt.Sprintf("WeightBasis(%d)", int(b))
	}
}

// DefaultGeometry computes the reset geometry for a viewport: a divider
// centered horizontally with its top edge at half height, and an even split.
// It is a pure function of its inputs.
func DefaultGeometry(v ViewportSize, d DividerSize, basis WeightBasis) (DividerGeometry, PaneRatios, error) {
	if err := v.Validate(); err != nil {
		return DividerGeometry{}, PaneRatios{}, err
	}
	if err := d.Validate(); err != nil {
		return DividerGeometry{}, PaneRatios{}, err
	}

	geometry := DividerGeometry{
		Left:   v.Width/2 - d.Width/2,
		Top:    v.Height / 2,
		Width:  d.Width,
		Height: d.Height,
	}

	even := 1.0
	// A zero-width viewport would give 0/0 weights.
	if basis == WeightBasisViewport && v.Width > 0 {
		even = v.Width / 2
	}
	return geometry, PaneRatios{LeftWeight: even, RightWeight: even}, nil
}

// ApplyDrag moves the divider and transfers weight by dx. No clamping is
// applied here: a weight may reach zero or go negative.
func ApplyDrag(start DragStart, dx float64) (float64, PaneRatios) {
	return start.DividerLeft + dx, PaneRatios{
		LeftWeight:  start.LeftWeight + dx,
		RightWeight: start.RightWeight - dx,
	}
}

// ClampPolicy bounds drags so neither pane's weight falls below MinWeight.
// The zero value disables clamping.
type ClampPolicy struct {
	Enabled   bool
	MinWeight float64
}

// Apply returns dx limited so that both weights of start+dx stay at or above
// MinWeight. When the snapshot cannot satisfy the bound on both sides the
// delta that evens the weights is returned.
func (p ClampPolicy) Apply(start DragStart, dx float64) float64 {
	if !p.Enabled {
		return dx
	}
	lo := p.MinWeight - start.LeftWeight
	hi := start.RightWeight - p.MinWeight
	if lo > hi {
		return (start.RightWeight - start.LeftWeight) / 2
	}
	if dx < lo {
		return lo
	}
	if dx > hi {
		return hi
	}
	return dx
}

func validateDimensions(what string, width, height float64) error {
	if !finiteNonNegative(width) {
		return fmt.Errorf("%s width %v: %w", what, width, ErrInvalidDimension)
	}
	if !finiteNonNegative(height) {
		return fmt.Errorf("%s height %v: %w", what, height, ErrInvalidDimension)
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
