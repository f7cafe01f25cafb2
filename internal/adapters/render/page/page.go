// Package page assembles the static dashboard: the index HTML around the
// chart snippets, the medal lists and the embedded stylesheet and script.
package page

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/okian/medailles/internal/adapters/render/charts"
	"github.com/okian/medailles/internal/domain/chartstyle"
	"github.com/okian/medailles/internal/domain/color"
	"github.com/okian/medailles/internal/domain/interaction"
	"github.com/okian/medailles/internal/domain/model"
	"github.com/okian/medailles/internal/domain/text"
)

//go:embed templates/index.html.tmpl
var indexTemplate string

//go:embed static
var staticFiles embed.FS

// Element ids the script and stylesheet rely on.
const (
	EditionsChartID  = "chart-editions"
	EditionsMetaID   = "meta-editions"
	ComparisonMetaID = "meta-j0"
	SportsListID     = "sport-medals-list"
	AthletesListID   = "top-athletes-list"
	FooterID         = "footer-update"
)

// elementIDs exposes the fixed ids to the template.
type elementIDs struct {
	EditionsMeta   string
	ComparisonMeta string
	SportsList     string
	AthletesList   string
	Footer         string
}

var index = template.Must(template.New("index").Funcs(template.FuncMap{
	"ids": func() elementIDs {
		return elementIDs{
			EditionsMeta:   EditionsMetaID,
			ComparisonMeta: ComparisonMetaID,
			SportsList:     SportsListID,
			AthletesList:   AthletesListID,
			Footer:         FooterID,
		}
	},
}).Parse(indexTemplate))

// ComparisonChartID is the container of metric m's day-aligned chart.
func ComparisonChartID(m model.Metric) string { return "chart-j0-" + string(m) }

// StatsID is the container of metric m's comparison sentence.
func StatsID(m model.Metric) string { return "stats-j0-" + string(m) }

// ShowcaseID is the container of the large medals of kind m.
func ShowcaseID(m model.Metric) string { return "medal-showcase-" + string(m) }

// Download links a chart container to its pre-rendered image.
type Download struct {
	Href     string
	Filename string
	Title    string
}

// Watermark is the stripe band and site URL laid over a rendered chart.
type Watermark struct {
	Stripes []template.CSS
	URL     string
}

// NewWatermark uses the five stripe colors and url.
func NewWatermark(url string) *Watermark {
	w := &Watermark{URL: url}
	for _, c := range color.Stripe {
		w.Stripes = append(w.Stripes, template.CSS(c)) //nolint:gosec // constant hex colors
	}
	return w
}

// Chart is one chart container. Snippet, Download and Fallback are empty
// when the chart's data failed to load. Render sets Watermark on every
// chart that has a snippet.
type Chart struct {
	ID        string
	Title     string
	Snippet   *charts.Snippet
	Download  *Download
	Fallback  string
	Watermark *Watermark
}

// Editions is the all-editions panel.
type Editions struct {
	Title string
	Intro string
	Meta  []string
	Chart Chart
}

// ShowcaseItem is one row of large medals.
type ShowcaseItem struct {
	ID    string
	Label string
	Icons template.HTML
}

// Stats is a rendered comparison sentence.
type Stats struct {
	BadgeClass string
	Before     string
	Badge      string
	After      string
	Past       string
}

// NewStats splits s into the pieces the paragraph markup needs.
func NewStats(s text.Stats) *Stats {
	before, after := s.Lead()
	return &Stats{
		BadgeClass: "stat-badge--" + string(s.Metric),
		Before:     before,
		Badge:      s.Badge(),
		After:      after,
		Past:       s.PastSentence(),
	}
}

// Cell is one metric of the comparison grid.
type Cell struct {
	Title   string
	StatsID string
	Stats   *Stats
	Chart   Chart
}

// Comparison is the day-aligned panel.
type Comparison struct {
	Meta     []string
	Showcase []ShowcaseItem
	Cells    []Cell
}

// StyleTable is what the page script needs to replay hover highlighting on
// one chart.
type StyleTable struct {
	Originals []chartstyle.Line `json:"originals"`
	Dim       chartstyle.Line   `json:"dim"`
	Tolerance float64           `json:"tolerance"`
}

// NewStyleTable captures h's original styles and tolerance.
func NewStyleTable(h *interaction.Highlighter) StyleTable {
	return StyleTable{Originals: h.Originals(), Dim: interaction.Dim, Tolerance: h.Tolerance()}
}

// Page is everything the index template renders.
type Page struct {
	BuildID    string
	SiteName   string
	SiteURL    string
	EchartsJS  string
	Editions   Editions
	Comparison Comparison
	Sports     []SportRow
	Athletes   []AthleteRow
	Footer     string
	Styles     map[string]StyleTable
}

// Scripts collects the init script of every rendered chart in page order.
func (p Page) Scripts() []template.HTML {
	var out []template.HTML
	if s := p.Editions.Chart.Snippet; s != nil {
		out = append(out, s.Script)
	}
	for _, c := range p.Comparison.Cells {
		if s := c.Chart.Snippet; s != nil {
			out = append(out, s.Script)
		}
	}
	return out
}

// Render writes the index page.
func Render(w io.Writer, p Page) error {
	if p.SiteName == "" {
		p.SiteName = text.SiteName
	}
	if p.EchartsJS == "" {
		p.EchartsJS = charts.AssetsHost + "echarts.min.js"
	}
	if p.SiteURL == "" {
		p.SiteURL = charts.DefaultSiteURL
	}
	wm := NewWatermark(p.SiteURL)
	if p.Editions.Chart.Snippet != nil {
		p.Editions.Chart.Watermark = wm
	}
	cells := make([]Cell, len(p.Comparison.Cells))
	for i, c := range p.Comparison.Cells {
		if c.Chart.Snippet != nil {
			c.Chart.Watermark = wm
		}
		cells[i] = c
	}
	p.Comparison.Cells = cells
	if err := index.Execute(w, p); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// WriteAssets copies the embedded static directory under dir.
func WriteAssets(dir string) error {
	err := fs.WalkDir(staticFiles, "static", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := staticFiles.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644) //nolint:gosec // public site assets
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAssets, err)
	}
	return nil
}

// Asset returns one embedded static file by name, e.g. "dashboard.js".
func Asset(name string) ([]byte, error) {
	return staticFiles.ReadFile("static/" + name)
}
