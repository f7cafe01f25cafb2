package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/medailles/internal/domain/color"
)

// Defaults for raster charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 360
	DefaultSiteURL = "francemedailles.fr"

	axisFontSize   = 9
	legendFontSize = 10
	watermarkFont  = 9
	stripeWidth    = 40
	stripeHeight   = 2.5
	watermarkGap   = 5
)

var watermarkText = color.HexToRgba(color.Muted, 0.5)

// RasterOptions sizes a raster chart. Width and Height are CSS pixels;
// Scale multiplies them, the font DPI and every stroke.
type RasterOptions struct {
	Width     int
	Height    int
	Scale     float64
	SiteURL   string
	Watermark bool
}

// RasterOption applies a configuration option to RasterOptions.
type RasterOption func(*RasterOptions)

// WithSize sets the chart size in CSS pixels.
func WithSize(width, height int) RasterOption {
	return func(o *RasterOptions) {
		if width > 0 && height > 0 {
			o.Width, o.Height = width, height
		}
	}
}

// WithScale sets the device pixel ratio.
func WithScale(scale float64) RasterOption {
	return func(o *RasterOptions) {
		if scale > 0 {
			o.Scale = scale
		}
	}
}

// WithWatermark draws the stripes and siteURL bottom-right.
func WithWatermark(siteURL string) RasterOption {
	return func(o *RasterOptions) {
		o.Watermark = true
		if siteURL != "" {
			o.SiteURL = siteURL
		}
	}
}

// WithoutWatermark leaves the watermark out, for images that get one later.
func WithoutWatermark() RasterOption {
	return func(o *RasterOptions) { o.Watermark = false }
}

// NewRasterOptions applies opts over the defaults.
func NewRasterOptions(opts ...RasterOption) RasterOptions {
	o := RasterOptions{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Scale:     1,
		SiteURL:   DefaultSiteURL,
		Watermark: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// legendItem is one swatch and label.
type legendItem struct {
	Label string
	Color string
	Line  bool
}

func legendRows(o RasterOptions, items, cell int) int {
	perRow := max(1, (o.Width-axisLeft-padRight)/cell)
	return max(1, (items+perRow-1)/perRow)
}

// canvas wraps a go-chart renderer with the frame it draws into.
type canvas struct {
	r chart.Renderer
	f Frame
}

func newCanvas(f Frame) (*canvas, error) {
	r, err := chart.PNG(f.Width, f.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	r.SetDPI(72 * f.Scale)
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	r.SetFont(font)
	c := &canvas{r: r, f: f}
	c.rect(color.Paper, 0, 0, float64(f.Width), float64(f.Height))
	return c, nil
}

func paint(s string) drawing.Color {
	c, err := color.Parse(s)
	if err != nil {
		return drawing.ColorTransparent
	}
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func ipt(v float64) int { return int(math.Round(v)) }

func (c *canvas) rect(fill string, x0, y0, x1, y1 float64) {
	c.r.SetFillColor(paint(fill))
	c.r.MoveTo(ipt(x0), ipt(y0))
	c.r.LineTo(ipt(x1), ipt(y0))
	c.r.LineTo(ipt(x1), ipt(y1))
	c.r.LineTo(ipt(x0), ipt(y1))
	c.r.Close()
	c.r.Fill()
}

func (c *canvas) polyline(stroke string, width float64, xs, ys []float64) {
	if len(xs) == 0 {
		return
	}
	c.r.SetStrokeColor(paint(stroke))
	c.r.SetStrokeWidth(width * c.f.Scale)
	c.r.MoveTo(ipt(xs[0]), ipt(ys[0]))
	for i := 1; i < len(xs); i++ {
		c.r.LineTo(ipt(xs[i]), ipt(ys[i]))
	}
	c.r.Stroke()
}

func (c *canvas) dot(fill string, radius, x, y float64) {
	c.r.SetFillColor(paint(fill))
	c.r.Circle(radius*c.f.Scale, ipt(x), ipt(y))
	c.r.Fill()
}

// text draws s with its baseline at y; align is -1 (right edge at x),
// 0 (centered) or 1 (left edge at x).
func (c *canvas) text(s, fill string, size, x, y float64, align int) {
	c.r.SetFontSize(size)
	c.r.SetFontColor(paint(fill))
	w := float64(c.r.MeasureText(s).Width())
	switch align {
	case -1:
		x -= w
	case 0:
		x -= w / 2
	}
	c.r.Text(s, ipt(x), ipt(y))
}

// axes draws horizontal grid lines with value labels and the column labels,
// thinning them out when they would overlap.
func (c *canvas) axes(labels []string) {
	f := c.f
	s := f.Scale
	left, right := float64(f.Plot.Left), float64(f.Plot.Right)
	for v := 0; v <= f.YMax; v += f.YStep {
		y := f.Y(float64(v))
		c.polyline(color.Grid, 1, []float64{left, right}, []float64{y, y})
		c.text(fmt.Sprint(v), color.Text, axisFontSize, left-6*s, y+3*s, -1)
	}
	if len(labels) == 0 {
		return
	}
	every := 1
	if slot := float64(f.Plot.Width()) / float64(len(labels)); slot < 36*s {
		every = int(math.Ceil(36 * s / slot))
	}
	base := float64(f.Plot.Bottom) + 16*s
	for i, l := range labels {
		if i%every != 0 {
			continue
		}
		c.text(l, color.Text, axisFontSize, f.X(i), base, 0)
	}
}

func (c *canvas) legend(items []legendItem, cell int) {
	s := c.f.Scale
	perRow := max(1, int(float64(c.f.Plot.Width())/(float64(cell)*s)))
	for k, it := range items {
		x := float64(c.f.Plot.Left) + float64(k%perRow)*float64(cell)*s
		mid := (padTop + float64(k/perRow)*legendRow + legendRow/2) * s
		if it.Line {
			c.polyline(it.Color, 3, []float64{x, x + 14*s}, []float64{mid, mid})
		} else {
			c.rect(it.Color, x, mid-5*s, x+10*s, mid+5*s)
		}
		c.text(it.Label, color.Text, legendFontSize, x+18*s, mid+4*s, 1)
	}
}

// watermark draws the five stripes and siteURL on one line in the
// bottom-right corner.
func (c *canvas) watermark(siteURL string) {
	s := c.f.Scale
	c.r.SetFontSize(watermarkFont)
	urlW := float64(c.r.MeasureText(siteURL).Width())
	x := float64(c.f.Width) - (stripeWidth+watermarkGap)*s - urlW - 10*s
	y := float64(c.f.Height) - 8*s

	segW := stripeWidth * s / float64(len(color.Stripe))
	top := y - watermarkFont*0.5*s - stripeHeight*s/2
	for i, st := range color.Stripe {
		x0 := x + float64(i)*segW
		c.rect(st, x0, top, x0+segW, top+stripeHeight*s)
	}
	c.text(siteURL, watermarkText, watermarkFont, x+(stripeWidth+watermarkGap)*s, y, 1)
}

func (c *canvas) save(w io.Writer) error {
	if err := c.r.Save(w); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}
