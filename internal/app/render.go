package service

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/okian/medailles/internal/adapters/render/charts"
	"github.com/okian/medailles/internal/adapters/render/page"
	"github.com/okian/medailles/internal/domain/chartstyle"
	"github.com/okian/medailles/internal/domain/interaction"
	"github.com/okian/medailles/internal/domain/model"
	"github.com/okian/medailles/internal/domain/text"
	"github.com/okian/medailles/pkg/logger"
)

// ChartEditions is the export id of the edition bar chart.
const ChartEditions = "editions"

// Output layout under the site directory.
const (
	IndexFile  = "index.html"
	ExportsDir = "exports"
	ChartsDir  = "charts"
)

// ComparisonChart is the export id of metric m's day-aligned chart.
func ComparisonChart(m model.Metric) string { return "j0-" + string(m) }

// ChartIDs lists every exportable chart.
func ChartIDs() []string {
	ids := []string{ChartEditions}
	for _, m := range model.Metrics {
		ids = append(ids, ComparisonChart(m))
	}
	return ids
}

func parseChart(id string) (Group, model.Metric, bool) {
	if id == ChartEditions {
		return GroupEditions, "", true
	}
	if rest, ok := strings.CutPrefix(id, "j0-"); ok {
		for _, m := range model.Metrics {
			if string(m) == rest {
				return GroupComparison, m, true
			}
		}
	}
	return "", "", false
}

// Pointer is a pointer position in data space: a day column and a value.
type Pointer struct {
	Day   int
	Value float64
}

// ExportOptions renders a comparison chart in a hovered state. HighlightYear
// highlights that year's line; Pointer applies the free-hover rule.
type ExportOptions struct {
	HighlightYear int
	Pointer       *Pointer
}

// Exported is one composed chart image.
type Exported struct {
	Filename string
	Data     []byte
}

// Files names the images written for one chart; empty when skipped.
type Files struct {
	Export   string
	Fallback string
}

func (s *Service) styles(d *Dashboard, m model.Metric) []chartstyle.Line {
	return chartstyle.Lines(charts.BaseColor(m), len(d.Series.Years), s.styleOpts...)
}

// Heading is the export title and subtitle of a chart.
func (s *Service) Heading(d *Dashboard, id string) (title, subtitle string) {
	g, m, ok := parseChart(id)
	switch {
	case !ok:
		return text.SiteName, ""
	case g == GroupEditions:
		return text.EditionsTitle, text.EditionsIntro
	}
	title = text.ComparisonTitle(m)
	if st, ok := text.BuildStats(d.Days, d.Series.Years, d.ActiveYear(), m); ok {
		subtitle = st.Plain()
	}
	return title, subtitle
}

// Export renders chart id as a composed PNG with title, subtitle and watermark.
func (s *Service) Export(ctx context.Context, d *Dashboard, id string, opts ExportOptions) (Exported, error) {
	comp, err := s.exporter()
	if err != nil {
		return Exported{}, err
	}
	raw, err := s.raster(ctx, d, id, opts,
		charts.WithSize(s.width, s.height),
		charts.WithScale(comp.Scale()),
		charts.WithoutWatermark(),
	)
	if err != nil {
		return Exported{}, err
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return Exported{}, fmt.Errorf("%w: %v", charts.ErrRender, err)
	}

	title, subtitle := s.Heading(d, id)
	var out bytes.Buffer
	if err := comp.Encode(&out, title, subtitle, img); err != nil {
		return Exported{}, err
	}
	s.logger.Debug(ctx, "chart exported", logger.String("chart", id), logger.Int("bytes", out.Len()))
	return Exported{Filename: text.ExportFilename(title), Data: out.Bytes()}, nil
}

// Fallback renders chart id as a bare watermarked PNG, shown in place of
// the interactive chart when scripts are off.
func (s *Service) Fallback(ctx context.Context, d *Dashboard, id string) (Exported, error) {
	raw, err := s.raster(ctx, d, id, ExportOptions{},
		charts.WithSize(s.width, s.height),
		charts.WithWatermark(s.siteURL),
	)
	if err != nil {
		return Exported{}, err
	}
	return Exported{Filename: id + ".png", Data: raw}, nil
}

func (s *Service) raster(ctx context.Context, d *Dashboard, id string, opts ExportOptions, ro ...charts.RasterOption) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g, m, ok := parseChart(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, id)
	}
	if err := d.Err(g); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrGroupFailed, g, err)
	}

	var (
		raw bytes.Buffer
		err error
	)
	switch g {
	case GroupEditions:
		err = charts.Editions{Records: d.Editions}.Render(&raw, ro...)
	default:
		var c charts.Comparison
		c, err = s.hovered(d, m, opts, charts.NewRasterOptions(ro...))
		if err == nil {
			err = c.Render(&raw, ro...)
		}
	}
	if err != nil {
		return nil, err
	}
	return raw.Bytes(), nil
}

// hovered returns metric m's comparison chart styled as if the pointer
// described by opts were over it.
func (s *Service) hovered(d *Dashboard, m model.Metric, opts ExportOptions, ro charts.RasterOptions) (charts.Comparison, error) {
	styles := s.styles(d, m)
	c := charts.NewComparison(d.Series, m, styles)
	h := interaction.New(styles, interaction.WithTolerance(s.tolerance*ro.Scale))
	switch {
	case opts.HighlightYear != 0:
		idx := c.YearIndex(opts.HighlightYear)
		if idx < 0 {
			return charts.Comparison{}, fmt.Errorf("%w: %d", ErrUnknownYear, opts.HighlightYear)
		}
		h.Highlight(idx)
	case opts.Pointer != nil:
		f := c.Frame(ro)
		h.Hover(f.PointsAt(c.Lines, opts.Pointer.Day), f.Y(opts.Pointer.Value))
	}
	return c.WithStyles(h.Styles()), nil
}

// Page assembles the index page. files maps chart ids to the images
// written for them.
func (s *Service) Page(ctx context.Context, d *Dashboard, files map[string]Files) page.Page {
	chart := func(id, containerID, title string) page.Chart {
		c := page.Chart{ID: containerID, Title: title}
		f := files[id]
		if f.Export != "" {
			c.Download = &page.Download{Href: ExportsDir + "/" + f.Export, Filename: f.Export, Title: title}
		}
		if f.Fallback != "" {
			c.Fallback = ChartsDir + "/" + f.Fallback
		}
		return c
	}

	p := page.Page{
		BuildID: d.BuildID,
		SiteURL: s.siteURL,
		Editions: page.Editions{
			Title: text.EditionsTitle,
			Intro: text.EditionsIntro,
			Chart: page.Chart{ID: page.EditionsChartID},
		},
		Styles: map[string]page.StyleTable{},
	}

	if d.Err(GroupEditions) != nil {
		p.Editions.Meta = []string{text.Fallback}
	} else {
		p.Editions.Meta = text.EditionMeta(model.Summarize(d.Editions))
		sn := charts.EditionSnippet("echarts-"+ChartEditions, d.Editions, s.height)
		p.Editions.Chart = chart(ChartEditions, page.EditionsChartID, text.EditionsTitle)
		p.Editions.Chart.Snippet = &sn
	}

	s.comparisonPanel(ctx, d, &p, chart)

	if d.Err(GroupSports) == nil {
		p.Sports = page.SportRows(d.Sports)
	}
	if d.Err(GroupAthletes) == nil {
		p.Athletes = page.AthleteRows(d.Athletes)
	}
	return p
}

func (s *Service) comparisonPanel(ctx context.Context, d *Dashboard, p *page.Page, chart func(id, containerID, title string) page.Chart) {
	for _, m := range model.Medals {
		p.Comparison.Showcase = append(p.Comparison.Showcase, page.ShowcaseItem{
			ID:    page.ShowcaseID(m),
			Label: text.MetricTitle(m),
		})
	}
	for _, m := range model.Metrics {
		p.Comparison.Cells = append(p.Comparison.Cells, page.Cell{
			Title:   text.MetricTitle(m),
			StatsID: page.StatsID(m),
			Chart:   page.Chart{ID: page.ComparisonChartID(m)},
		})
	}

	last, ok := d.Days.Last(d.ActiveYear())
	if d.Err(GroupComparison) != nil || !ok {
		p.Comparison.Meta = []string{text.Fallback}
		return
	}

	for i := range p.Comparison.Showcase {
		p.Comparison.Showcase[i].Icons = page.Showcase(model.Medals[i], last.Value(model.Medals[i]))
	}
	for i, m := range model.Metrics {
		cell := &p.Comparison.Cells[i]
		styles := s.styles(d, m)
		id := "echarts-" + ComparisonChart(m)
		sn := charts.ComparisonSnippet(id, d.Series, m, styles, s.height)
		cell.Chart = chart(ComparisonChart(m), page.ComparisonChartID(m), text.ComparisonTitle(m))
		cell.Chart.Snippet = &sn
		p.Styles[id] = page.NewStyleTable(interaction.New(styles, interaction.WithTolerance(s.tolerance)))
		if st, ok := text.BuildStats(d.Days, d.Series.Years, d.ActiveYear(), m); ok {
			cell.Stats = page.NewStats(st)
		}
	}

	footer, err := text.UpdatedAt(last.Date)
	if err != nil {
		s.logger.Warn(ctx, "unreadable update date", logger.String("date", last.Date), logger.Error(err))
		return
	}
	p.Footer = footer
}

// Write renders the site into dir: static assets, one export and one
// script-free fallback per loaded chart, then index.html. A chart whose
// image fails loses that link; file system errors fail the write.
func (s *Service) Write(ctx context.Context, d *Dashboard, dir string) error {
	for _, sub := range []string{ExportsDir, ChartsDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}
	if err := page.WriteAssets(dir); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	var mu sync.Mutex
	files := make(map[string]Files)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, id := range ChartIDs() {
		if grp, _, _ := parseChart(id); d.Err(grp) != nil {
			continue
		}
		g.Go(func() error {
			var f Files
			for _, out := range []struct {
				sub    string
				render func() (Exported, error)
				name   *string
			}{
				{ExportsDir, func() (Exported, error) { return s.Export(gctx, d, id, ExportOptions{}) }, &f.Export},
				{ChartsDir, func() (Exported, error) { return s.Fallback(gctx, d, id) }, &f.Fallback},
			} {
				e, err := out.render()
				if err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					s.logger.Warn(gctx, "chart image skipped", logger.String("chart", id), logger.String("dir", out.sub), logger.Error(err))
					continue
				}
				if err := writeFile(filepath.Join(dir, out.sub, e.Filename), e.Data); err != nil {
					return err
				}
				*out.name = e.Filename
			}
			mu.Lock()
			files[id] = f
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := page.Render(&buf, s.Page(ctx, d, files)); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, IndexFile), buf.Bytes()); err != nil {
		return err
	}
	s.logger.Info(ctx, "site written",
		logger.String("buildID", d.BuildID),
		logger.String("dir", dir),
		logger.Int("charts", len(files)),
	)
	return nil
}

// writeFile replaces path atomically so a concurrent reader never sees a
// partial file.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after rename
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil { //nolint:gosec // public site files
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
