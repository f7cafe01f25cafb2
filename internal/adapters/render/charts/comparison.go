package charts

import (
	"io"
	"strconv"

	"github.com/okian/medailles/internal/domain/chartstyle"
	"github.com/okian/medailles/internal/domain/interaction"
	"github.com/okian/medailles/internal/domain/model"
	"github.com/okian/medailles/internal/domain/series"
	"github.com/okian/medailles/pkg/metrics"
)

const yearLegendCell = 64

// Comparison is one metric's day-aligned chart: Lines and Styles follow Years.
type Comparison struct {
	Labels []string
	Years  []int
	Lines  []series.Dense
	Styles []chartstyle.Line
}

// NewComparison picks metric m out of set.
func NewComparison(set series.Set, m model.Metric, styles []chartstyle.Line) Comparison {
	c := Comparison{
		Labels: set.Labels,
		Years:  set.Years,
		Lines:  make([]series.Dense, len(set.Years)),
		Styles: styles,
	}
	for i, y := range set.Years {
		c.Lines[i] = set.Metrics[m][y]
	}
	return c
}

// WithStyles returns a copy drawn with styles, e.g. a highlighter's current table.
func (c Comparison) WithStyles(styles []chartstyle.Line) Comparison {
	c.Styles = styles
	return c
}

func (c Comparison) maxValue() int {
	m := 0
	for _, d := range c.Lines {
		for _, v := range d {
			if v != nil && *v > m {
				m = *v
			}
		}
	}
	return m
}

// Frame lays the chart out for o.
func (c Comparison) Frame(o RasterOptions) Frame {
	rows := legendRows(o, len(c.Years), yearLegendCell)
	return NewFrame(o, len(c.Labels), c.maxValue(), rows, false)
}

// YearIndex is the position of year among the drawn lines, or -1.
func (c Comparison) YearIndex(year int) int {
	for i, y := range c.Years {
		if y == year {
			return i
		}
	}
	return -1
}

func (c Comparison) style(i int) chartstyle.Line {
	if i < len(c.Styles) {
		return c.Styles[i]
	}
	return interaction.Dim
}

// Render writes the chart as PNG. Dimmed lines go under the others and
// older years under newer ones.
func (c Comparison) Render(w io.Writer, opts ...RasterOption) error {
	if len(c.Years) == 0 || len(c.Labels) == 0 {
		return ErrNoData
	}
	o := NewRasterOptions(opts...)
	cv, err := newCanvas(c.Frame(o))
	if err != nil {
		return err
	}
	cv.axes(c.Labels)

	for _, dimmed := range []bool{true, false} {
		for i := len(c.Years) - 1; i >= 0; i-- {
			st := c.style(i)
			if (st == interaction.Dim) != dimmed {
				continue
			}
			cv.series(c.Lines[i], st)
		}
	}

	items := make([]legendItem, len(c.Years))
	for i, y := range c.Years {
		items[i] = legendItem{Label: strconv.Itoa(y), Color: c.style(i).Color, Line: true}
	}
	cv.legend(items, yearLegendCell)
	if o.Watermark {
		cv.watermark(o.SiteURL)
	}
	if err := cv.save(w); err != nil {
		return err
	}
	metrics.RecordChartRendered(KindRaster)
	return nil
}

// series draws each gap-free run as a polyline; lone points become dots.
func (c *canvas) series(d series.Dense, st chartstyle.Line) {
	for _, seg := range d.Segments() {
		xs := make([]float64, len(seg.Values))
		ys := make([]float64, len(seg.Values))
		for k, v := range seg.Values {
			xs[k] = c.f.X(seg.Start + k)
			ys[k] = c.f.Y(float64(v))
		}
		if len(xs) == 1 {
			c.dot(st.Color, max(st.Width, 2), xs[0], ys[0])
			continue
		}
		c.polyline(st.Color, st.Width, xs, ys)
	}
}
