// Package chartstyle computes the per-year line styles of the day-aligned
// comparison charts: a heavy, oversaturated active year and progressively
// faded historical years.
package chartstyle

import (
	"math"

	"github.com/okian/medailles/internal/domain/color"
)

// Defaults.
const (
	ActiveWidth     = 5.2
	HistoricalWidth = 2.4
	OpacityMax      = 0.68
	OpacityMin      = 0.24

	activeSaturation   = 1.5
	fallbackSaturation = 0.5
)

// HistoricalSaturation is the saturation factor per historical rank (1-based rank - 1).
var HistoricalSaturation = []float64{0.85, 0.78, 0.72, 0.66, 0.61, 0.56, 0.52, 0.48, 0.44}

// Line is the stroke of one series.
type Line struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Options tunes Lines.
type Options struct {
	OpacityMax float64
	OpacityMin float64
}

// Option applies a configuration option to Options.
type Option func(*Options)

// WithOpacityRange overrides the historical opacity bounds. Invalid ranges are ignored.
func WithOpacityRange(minOpacity, maxOpacity float64) Option {
	return func(o *Options) {
		if minOpacity >= 0 && maxOpacity <= 1 && minOpacity <= maxOpacity {
			o.OpacityMin = minOpacity
			o.OpacityMax = maxOpacity
		}
	}
}

// Opacity returns the opacity of the historical series at 0-based rank among
// count historical series: linear from max (most recent) to min (oldest).
// A single historical series gets max. Values are clamped to the bounds.
func Opacity(rank, count int, o Options) float64 {
	switch {
	case count <= 1:
		return o.OpacityMax
	case rank >= count-1:
		return o.OpacityMin
	}
	v := o.OpacityMax - (float64(rank)/float64(count-1))*(o.OpacityMax-o.OpacityMin)
	return math.Max(o.OpacityMin, math.Min(o.OpacityMax, v))
}

// Saturation returns the saturation factor for a 0-based historical rank.
func Saturation(rank int) float64 {
	if rank >= 0 && rank < len(HistoricalSaturation) {
		return HistoricalSaturation[rank]
	}
	return fallbackSaturation
}

// Lines returns one style per series for n series built from base. Series 0
// is the active year.
func Lines(base string, n int, opts ...Option) []Line {
	o := Options{OpacityMax: OpacityMax, OpacityMin: OpacityMin}
	for _, opt := range opts {
		opt(&o)
	}
	if n <= 0 {
		return nil
	}
	historical := max(1, n-1)
	out := make([]Line, n)
	out[0] = Line{Color: color.SaturateHex(base, activeSaturation), Width: ActiveWidth}
	for i := 1; i < n; i++ {
		rank := i - 1
		out[i] = Line{
			Color: color.HexToRgba(color.SaturateHex(base, Saturation(rank)), Opacity(rank, historical, o)),
			Width: HistoricalWidth,
		}
	}
	return out
}
