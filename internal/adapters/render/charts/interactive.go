// Package charts renders the dashboard charts twice: as go-echarts snippets
// for the interactive page and as PNG images drawn with go-chart.
package charts

import (
	"html/template"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/okian/medailles/internal/domain/chartstyle"
	"github.com/okian/medailles/internal/domain/color"
	"github.com/okian/medailles/internal/domain/model"
	"github.com/okian/medailles/internal/domain/series"
	"github.com/okian/medailles/internal/domain/text"
	"github.com/okian/medailles/pkg/metrics"
)

// Rendered chart kinds, used as metric labels.
const (
	KindInteractive = "interactive"
	KindRaster      = "raster"
)

// AssetsHost serves echarts.min.js for the interactive charts.
const AssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// Snippet is a chart ready to embed: its container markup and init script.
type Snippet struct {
	ID      string
	Element template.HTML
	Script  template.HTML
}

// editionTooltip lists the three medal counts and their sum under the
// edition title. Function bodies travel JSON-encoded, so string literals
// use backticks and single quotes only.
var editionTooltip = `function (params) {
  var total = 0;
  var lines = [];
  params.forEach(function (p) {
    total += Number(p.value) || 0;
    lines.push(p.marker + p.seriesName + ' : ' + p.value);
  });
  return ` + "`" + text.EditionTooltipTitle("") + "`" + ` + params[0].name + '<br/>' + lines.join('<br/>') + '<br/>Total : ' + total;
}`

func baseOptions(id string, height int) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			ChartID:         id,
			Width:           "100%",
			Height:          strconv.Itoa(height) + "px",
			BackgroundColor: color.Paper,
			AssetsHost:      AssetsHost,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(true),
			Bottom:    "0",
			TextStyle: &opts.TextStyle{Color: color.Text},
		}),
		charts.WithGridOpts(opts.Grid{
			Left:   "48",
			Right:  "16",
			Top:    "16",
			Bottom: "56",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			AxisLabel: &opts.AxisLabel{Color: color.Text},
			SplitLine: &opts.SplitLine{
				Show:      opts.Bool(true),
				LineStyle: &opts.LineStyle{Color: color.Grid},
			},
		}),
	}
}

// EditionBar is the stacked gold/silver/bronze bar chart, one bar per edition.
func EditionBar(id string, editions []model.EditionRecord, height int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(baseOptions(id, height),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "axis",
			Formatter: opts.FuncOpts(editionTooltip),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Color: color.Text},
		}),
	)...)

	years := make([]string, len(editions))
	data := map[model.Metric][]opts.BarData{}
	for i, e := range editions {
		years[i] = strconv.Itoa(e.Year)
		for _, m := range model.Medals {
			data[m] = append(data[m], opts.BarData{Value: e.Value(m)})
		}
	}
	bar.SetXAxis(years)
	for _, m := range model.Medals {
		bar.AddSeries(text.MetricTitle(m), data[m],
			charts.WithItemStyleOpts(opts.ItemStyle{Color: medalColor(m)}),
		)
	}
	bar.SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "medals"}))
	return bar
}

// ComparisonLine is the day-aligned chart of one metric, one line per
// available year. styles follow set.Years; gaps stay broken.
func ComparisonLine(id string, set series.Set, m model.Metric, styles []chartstyle.Line, height int) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(baseOptions(id, height),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Color: color.Text},
		}),
	)...)

	line.SetXAxis(set.Labels)
	byYear := set.Metrics[m]
	for i, year := range set.Years {
		style := chartstyle.Line{Color: color.Muted, Width: chartstyle.HistoricalWidth}
		if i < len(styles) {
			style = styles[i]
		}
		line.AddSeries(strconv.Itoa(year), lineData(byYear[year]),
			charts.WithLineChartOpts(opts.LineChart{
				ConnectNulls: opts.Bool(false),
				SymbolSize:   4,
			}),
			charts.WithLineStyleOpts(opts.LineStyle{
				Color: style.Color,
				Width: float32(style.Width),
			}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: style.Color}),
		)
	}
	return line
}

// EditionSnippet renders EditionBar for embedding.
func EditionSnippet(id string, editions []model.EditionRecord, height int) Snippet {
	s := EditionBar(id, editions, height).RenderSnippet()
	metrics.RecordChartRendered(KindInteractive)
	return Snippet{ID: id, Element: template.HTML(s.Element), Script: template.HTML(s.Script)} //nolint:gosec // generated by go-echarts
}

// ComparisonSnippet renders ComparisonLine for embedding.
func ComparisonSnippet(id string, set series.Set, m model.Metric, styles []chartstyle.Line, height int) Snippet {
	s := ComparisonLine(id, set, m, styles, height).RenderSnippet()
	metrics.RecordChartRendered(KindInteractive)
	return Snippet{ID: id, Element: template.HTML(s.Element), Script: template.HTML(s.Script)} //nolint:gosec // generated by go-echarts
}

func lineData(d series.Dense) []opts.LineData {
	out := make([]opts.LineData, len(d))
	for i, v := range d {
		if v == nil {
			out[i] = opts.LineData{Value: nil}
			continue
		}
		out[i] = opts.LineData{Value: *v}
	}
	return out
}

func medalColor(m model.Metric) string {
	switch m {
	case model.MetricGold:
		return color.Gold
	case model.MetricSilver:
		return color.Silver
	case model.MetricBronze:
		return color.Bronze
	default:
		return color.Total
	}
}

// BaseColor is the line color family of a metric's comparison chart.
func BaseColor(m model.Metric) string { return medalColor(m) }
