// Package export composes a downloadable chart image: a title, a wrapped
// subtitle, the chart itself and a watermark on a paper background.
package export

import (
	"fmt"
	"image"
	imgcolor "image/color"
	"image/png"
	"io"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/okian/medailles/internal/domain/color"
	"github.com/okian/medailles/internal/domain/text"
	"github.com/okian/medailles/pkg/metrics"
)

// Layout constants in CSS pixels, before scaling.
const (
	DefaultScale   = 2
	DefaultSiteURL = "francemedailles.fr"

	pad          = 32
	titleSize    = 18
	subtitleSize = 12
	lineRatio    = 1.5
	gap          = 8
	headerTail   = 16

	stripeWidth   = 60
	stripeHeight  = 3
	markFontSize  = 10
	markGap       = 8
	markBaseline  = 16
	markRiseRatio = 0.3
)

// Layout is the computed geometry of one export.
type Layout struct {
	Width        int
	Height       int
	HeaderHeight int
	Subtitle     []string
	LineHeight   float64
}

// Composer draws exports. Font faces keep glyph caches, so Compose
// serializes callers.
type Composer struct {
	scale   float64
	siteURL string

	mu       sync.Mutex
	title    font.Face
	subtitle font.Face
	mark     font.Face
}

// New loads the Go fonts at the configured scale.
func New(opts ...Option) (*Composer, error) {
	c := &Composer{scale: DefaultScale, siteURL: DefaultSiteURL}
	for _, opt := range opts {
		opt(c)
	}

	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFont, err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFont, err)
	}
	if c.title, err = face(bold, titleSize*c.scale); err != nil {
		return nil, err
	}
	if c.subtitle, err = face(regular, subtitleSize*c.scale); err != nil {
		return nil, err
	}
	if c.mark, err = face(regular, markFontSize*c.scale); err != nil {
		return nil, err
	}
	return c, nil
}

func face(f *opentype.Font, px float64) (font.Face, error) {
	ff, err := opentype.NewFace(f, &opentype.FaceOptions{Size: px, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFont, err)
	}
	return ff, nil
}

// Scale is the device pixel ratio the composer draws at.
func (c *Composer) Scale() float64 { return c.scale }

func (c *Composer) px(v float64) float64 { return v * c.scale }

// measurer reports subtitle widths in device pixels.
func (c *Composer) measurer() text.Measurer {
	return text.MeasureFunc(func(s string) float64 {
		return fixedToFloat(font.MeasureString(c.subtitle, s))
	})
}

// Layout sizes the export around a chart of chartW x chartH device pixels.
// The header grows with the number of wrapped subtitle lines.
func (c *Composer) Layout(chartW, chartH int, subtitle string) Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout(chartW, chartH, subtitle)
}

func (c *Composer) layout(chartW, chartH int, subtitle string) Layout {
	l := Layout{LineHeight: c.px(subtitleSize * lineRatio)}
	l.Width = chartW + int(2*c.px(pad))
	maxText := float64(l.Width) - 2*c.px(pad)
	if subtitle != "" {
		l.Subtitle = text.Wrap(c.measurer(), subtitle, maxText)
	}
	header := c.px(pad) + c.px(titleSize)
	if n := len(l.Subtitle); n > 0 {
		header += c.px(gap) + float64(n)*l.LineHeight
	}
	header += c.px(headerTail)
	l.HeaderHeight = int(math.Ceil(header))
	l.Height = chartH + l.HeaderHeight + int(c.px(pad))
	return l
}

// Compose draws title, subtitle and chart into a new image.
func (c *Composer) Compose(title, subtitle string, chart image.Image) (*image.NRGBA, error) {
	if chart == nil {
		return nil, ErrChart
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	b := chart.Bounds()
	l := c.layout(b.Dx(), b.Dy(), subtitle)
	dst := image.NewNRGBA(image.Rect(0, 0, l.Width, l.Height))
	fill(dst, dst.Bounds(), color.MustParse(color.Paper))

	p := c.px(pad)
	drawTop(dst, c.title, color.MustParse(color.Total), p, p, title)
	y := p + c.px(titleSize) + c.px(gap)
	for _, line := range l.Subtitle {
		drawTop(dst, c.subtitle, color.MustParse(color.Text), p, y, line)
		y += l.LineHeight
	}

	at := image.Pt(int(p), l.HeaderHeight)
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(b.Size())}, chart, b.Min, draw.Over)

	c.watermark(dst, l)
	return dst, nil
}

// Encode composes and writes the export as PNG.
func (c *Composer) Encode(w io.Writer, title, subtitle string, chart image.Image) error {
	img, err := c.Compose(title, subtitle, chart)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	metrics.RecordExport()
	return nil
}

// watermark puts the stripes and the site URL on one line, bottom-right.
func (c *Composer) watermark(dst *image.NRGBA, l Layout) {
	urlW := fixedToFloat(font.MeasureString(c.mark, c.siteURL))
	total := c.px(stripeWidth) + c.px(markGap) + urlW
	x := float64(l.Width) - c.px(pad) - total
	y := float64(l.Height) - c.px(markBaseline)

	segW := c.px(stripeWidth) / float64(len(color.Stripe))
	top := y - c.px(stripeHeight)/2 - c.px(markFontSize)*markRiseRatio
	for i, s := range color.Stripe {
		x0 := x + segW*float64(i)
		fill(dst, image.Rect(round(x0), round(top), round(x0+segW), round(top+c.px(stripeHeight))), color.MustParse(s))
	}
	drawBottom(dst, c.mark, color.MustParse(color.Muted), x+c.px(stripeWidth)+c.px(markGap), y, c.siteURL)
}

func fill(dst draw.Image, r image.Rectangle, c imgcolor.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// drawTop draws s with the top of its em box at y.
func drawTop(dst draw.Image, f font.Face, c imgcolor.Color, x, y float64, s string) {
	drawAt(dst, f, c, x, y+fixedToFloat(f.Metrics().Ascent), s)
}

// drawBottom draws s with the bottom of its em box at y.
func drawBottom(dst draw.Image, f font.Face, c imgcolor.Color, x, y float64, s string) {
	drawAt(dst, f, c, x, y-fixedToFloat(f.Metrics().Descent), s)
}

func drawAt(dst draw.Image, f font.Face, c imgcolor.Color, x, baseline float64, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: f,
		Dot:  fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(baseline)},
	}
	d.DrawString(s)
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }

func round(v float64) int { return int(math.Round(v)) }
