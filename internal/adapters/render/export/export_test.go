package export

import (
	"bytes"
	"errors"
	"image"
	imgcolor "image/color"
	"image/png"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/medailles/internal/domain/color"
)

func solid(w, h int, c imgcolor.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestLayout(t *testing.T) {
	Convey("Given a composer at scale 2", t, func() {
		c, err := New()
		So(err, ShouldBeNil)
		So(c.Scale(), ShouldEqual, 2)

		Convey("When there is no subtitle", func() {
			l := c.Layout(400, 200, "")

			Convey("Then the header is pad + title + tail", func() {
				So(l.Subtitle, ShouldBeEmpty)
				So(l.HeaderHeight, ShouldEqual, (32+18+16)*2)
				So(l.Width, ShouldEqual, 400+2*64)
				So(l.Height, ShouldEqual, 200+l.HeaderHeight+64)
			})
		})

		Convey("When the subtitle fits on one line", func() {
			l := c.Layout(1440, 720, "La France a remporté 3 médailles.")

			Convey("Then one line of subtitle is reserved", func() {
				So(len(l.Subtitle), ShouldEqual, 1)
				So(l.LineHeight, ShouldEqual, 36)
				So(l.HeaderHeight, ShouldEqual, (32+18+8+16)*2+36)
			})
		})

		Convey("When the subtitle is long", func() {
			sub := strings.Repeat("C'était 3 en 2022 et 2 en 2018 à la même période. ", 12)
			l := c.Layout(400, 200, strings.TrimSpace(sub))

			Convey("Then the header grows with every wrapped line", func() {
				So(len(l.Subtitle), ShouldBeGreaterThan, 1)
				So(l.HeaderHeight, ShouldEqual, (32+18+8+16)*2+36*len(l.Subtitle))
				So(strings.Join(l.Subtitle, " "), ShouldEqual, strings.TrimSpace(sub))
			})
		})
	})
}

func TestCompose(t *testing.T) {
	Convey("Given a composer and a chart image", t, func() {
		c, err := New(WithScale(1), WithSiteURL("example.org"))
		So(err, ShouldBeNil)
		red := imgcolor.NRGBA{R: 255, A: 255}
		chart := solid(100, 50, red)

		Convey("When composing", func() {
			img, err := c.Compose("Or", "", chart)
			So(err, ShouldBeNil)

			Convey("Then the canvas wraps the chart with padding and header", func() {
				l := c.Layout(100, 50, "")
				So(img.Bounds().Dx(), ShouldEqual, 100+64)
				So(img.Bounds().Dy(), ShouldEqual, l.Height)
			})

			Convey("Then the background is paper and the chart sits under the header", func() {
				So(img.NRGBAAt(1, 1), ShouldResemble, color.MustParse(color.Paper))
				l := c.Layout(100, 50, "")
				So(img.NRGBAAt(32+10, l.HeaderHeight+10), ShouldResemble, red)
			})
		})

		Convey("When encoding", func() {
			var buf bytes.Buffer
			So(c.Encode(&buf, "JO d'hiver 2026", "Sous-titre", chart), ShouldBeNil)
			decoded, err := png.Decode(&buf)
			So(err, ShouldBeNil)
			So(decoded.Bounds().Dx(), ShouldEqual, 164)
		})

		Convey("When the chart is missing", func() {
			_, err := c.Compose("Or", "", nil)
			So(errors.Is(err, ErrChart), ShouldBeTrue)
		})
	})
}
