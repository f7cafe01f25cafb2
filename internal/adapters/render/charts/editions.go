package charts

import (
	"io"
	"strconv"

	"github.com/okian/medailles/internal/domain/model"
	"github.com/okian/medailles/internal/domain/text"
	"github.com/okian/medailles/pkg/metrics"
)

const (
	medalLegendCell = 80
	barFill         = 0.56
)

// Editions is the stacked medal bar chart, one bar per edition.
type Editions struct {
	Records []model.EditionRecord
}

func (e Editions) maxValue() int {
	m := 0
	for _, r := range e.Records {
		if s := r.Gold + r.Silver + r.Bronze; s > m {
			m = s
		}
	}
	return m
}

// Frame lays the chart out for o.
func (e Editions) Frame(o RasterOptions) Frame {
	rows := legendRows(o, len(model.Medals), medalLegendCell)
	return NewFrame(o, len(e.Records), e.maxValue(), rows, true)
}

// Render writes the chart as PNG, gold at the bottom of each stack.
func (e Editions) Render(w io.Writer, opts ...RasterOption) error {
	if len(e.Records) == 0 {
		return ErrNoData
	}
	o := NewRasterOptions(opts...)
	f := e.Frame(o)
	cv, err := newCanvas(f)
	if err != nil {
		return err
	}

	labels := make([]string, len(e.Records))
	for i, r := range e.Records {
		labels[i] = strconv.Itoa(r.Year)
	}
	cv.axes(labels)

	half := f.Band() * barFill / 2
	for i, r := range e.Records {
		x := f.X(i)
		acc := 0
		for _, m := range model.Medals {
			v := r.Value(m)
			if v <= 0 {
				continue
			}
			cv.rect(medalColor(m), x-half, f.Y(float64(acc+v)), x+half, f.Y(float64(acc)))
			acc += v
		}
	}

	items := make([]legendItem, len(model.Medals))
	for i, m := range model.Medals {
		items[i] = legendItem{Label: text.MetricTitle(m), Color: medalColor(m)}
	}
	cv.legend(items, medalLegendCell)
	if o.Watermark {
		cv.watermark(o.SiteURL)
	}
	if err := cv.save(w); err != nil {
		return err
	}
	metrics.RecordChartRendered(KindRaster)
	return nil
}
