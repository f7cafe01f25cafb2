package charts

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/okian/medailles/internal/domain/series"
)

// Layout in unscaled pixels.
const (
	padTop      = 8
	legendRow   = 18
	axisLeft    = 44
	padRight    = 16
	axisBottom  = 44
	targetTicks = 5
)

// Frame is the pixel geometry of one raster chart. Drawing and pointer
// hit-testing both go through it, so a pointer position maps to the same
// lines that were drawn.
type Frame struct {
	Width   int
	Height  int
	Scale   float64
	Plot    chart.Box
	Columns int
	Bars    bool
	YMax    int
	YStep   int
}

// NewFrame lays out a chart of columns x positions whose values top out at
// maxValue, leaving legendRows rows above the plot.
func NewFrame(o RasterOptions, columns, maxValue, legendRows int, bars bool) Frame {
	f := Frame{
		Width:   scaled(o.Width, o.Scale),
		Height:  scaled(o.Height, o.Scale),
		Scale:   o.Scale,
		Columns: columns,
		Bars:    bars,
	}
	f.YMax, f.YStep = niceScale(maxValue)
	f.Plot = chart.Box{
		Top:    f.px(float64(padTop + legendRows*legendRow + padTop)),
		Left:   f.px(axisLeft),
		Right:  f.Width - f.px(padRight),
		Bottom: f.Height - f.px(axisBottom),
	}
	return f
}

func (f Frame) px(v float64) int { return int(math.Round(v * f.Scale)) }

// X is the horizontal center of column i. Line charts span the plot edge to
// edge; bar charts center each column in its band.
func (f Frame) X(i int) float64 {
	w := float64(f.Plot.Width())
	if f.Bars {
		band := w / float64(max(1, f.Columns))
		return float64(f.Plot.Left) + band*(float64(i)+0.5)
	}
	if f.Columns <= 1 {
		return float64(f.Plot.Left) + w/2
	}
	return float64(f.Plot.Left) + w*float64(i)/float64(f.Columns-1)
}

// Band is the width available to one bar column.
func (f Frame) Band() float64 {
	return float64(f.Plot.Width()) / float64(max(1, f.Columns))
}

// Y projects a value onto the vertical axis.
func (f Frame) Y(v float64) float64 {
	h := float64(f.Plot.Height())
	return float64(f.Plot.Bottom) - h*v/float64(f.YMax)
}

// PointsAt projects every series' value at column i; series without a
// value there yield nil.
func (f Frame) PointsAt(lines []series.Dense, i int) []*float64 {
	out := make([]*float64, len(lines))
	for j, d := range lines {
		if i < 0 || i >= len(d) || d[i] == nil {
			continue
		}
		y := f.Y(float64(*d[i]))
		out[j] = &y
	}
	return out
}

// niceScale rounds maxValue up to a multiple of a 1-2-5 step giving about
// targetTicks intervals. Empty charts get a unit axis.
func niceScale(maxValue int) (top, step int) {
	if maxValue <= 0 {
		return 1, 1
	}
	raw := float64(maxValue) / targetTicks
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step = 1
	for _, m := range []float64{1, 2, 5, 10} {
		if s := m * mag; s >= raw {
			step = max(1, int(math.Round(s)))
			break
		}
	}
	top = ((maxValue + step - 1) / step) * step
	return top, step
}

func scaled(v int, s float64) int { return int(math.Round(float64(v) * s)) }
