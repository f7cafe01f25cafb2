// Package interaction models hover highlighting on a multi-line chart: one
// series keeps its style while the others fade, and leaving the chart
// restores the captured originals.
package interaction

import (
	"math"

	"github.com/okian/medailles/internal/domain/chartstyle"
	"github.com/okian/medailles/internal/domain/color"
)

// DefaultTolerance is the vertical distance, in pixels, within which the
// pointer counts as being on a line.
const DefaultTolerance = 20.0

// Dim is the style applied to every series that is not highlighted.
var Dim = chartstyle.Line{Color: color.HexToRgba("#999999", 0.08), Width: 1}

// Highlighter owns the mutable style table of one chart. It is not safe for
// concurrent use; each chart instance gets its own.
type Highlighter struct {
	originals []chartstyle.Line
	current   []chartstyle.Line
	tolerance float64
}

// Option applies a configuration option to the Highlighter.
type Option func(*Highlighter)

// WithTolerance sets the nearest-line pixel tolerance.
func WithTolerance(px float64) Option {
	return func(h *Highlighter) {
		if px > 0 {
			h.tolerance = px
		}
	}
}

// New snapshots originals; later changes to the slice do not leak in.
func New(originals []chartstyle.Line, opts ...Option) *Highlighter {
	h := &Highlighter{
		originals: append([]chartstyle.Line(nil), originals...),
		current:   append([]chartstyle.Line(nil), originals...),
		tolerance: DefaultTolerance,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Highlight keeps series i in its original style and dims every other one.
// It reports whether any style changed. Out-of-range indexes reset.
func (h *Highlighter) Highlight(i int) bool {
	if i < 0 || i >= len(h.originals) {
		return h.Reset()
	}
	changed := false
	for j := range h.current {
		target := Dim
		if j == i {
			target = h.originals[j]
		}
		if h.current[j] != target {
			h.current[j] = target
			changed = true
		}
	}
	return changed
}

// Reset restores every series to its original style.
func (h *Highlighter) Reset() bool {
	changed := false
	for j := range h.current {
		if h.current[j] != h.originals[j] {
			h.current[j] = h.originals[j]
			changed = true
		}
	}
	return changed
}

// Hover applies the free-pointer contract: highlight the nearest line when
// one is within tolerance, otherwise reset. It returns the hovered index or -1.
func (h *Highlighter) Hover(points []*float64, pointerY float64) int {
	idx := Nearest(points, pointerY, h.tolerance)
	if idx >= 0 {
		h.Highlight(idx)
	} else {
		h.Reset()
	}
	return idx
}

// Styles returns a copy of the current style table.
func (h *Highlighter) Styles() []chartstyle.Line {
	return append([]chartstyle.Line(nil), h.current...)
}

// Originals returns a copy of the captured original styles.
func (h *Highlighter) Originals() []chartstyle.Line {
	return append([]chartstyle.Line(nil), h.originals...)
}

// Tolerance returns the nearest-line tolerance in pixels.
func (h *Highlighter) Tolerance() float64 { return h.tolerance }

// Nearest picks, among the series' projected y positions at the pointer's
// x index, the one closest to pointerY. Series with no point there are
// skipped. Returns -1 when the closest is not strictly within tolerance.
func Nearest(points []*float64, pointerY, tolerance float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, p := range points {
		if p == nil {
			continue
		}
		if d := math.Abs(*p - pointerY); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 || bestDist >= tolerance {
		return -1
	}
	return best
}
