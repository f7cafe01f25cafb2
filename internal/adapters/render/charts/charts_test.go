package charts

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/medailles/internal/domain/chartstyle"
	"github.com/okian/medailles/internal/domain/interaction"
	"github.com/okian/medailles/internal/domain/model"
	"github.com/okian/medailles/internal/domain/series"
)

func intp(v int) *int { return &v }

func sampleSet() series.Set {
	days := model.DaysByYear{
		2026: {
			{DayIndex: 0, Tally: model.Tally{Gold: 1, Total: 1}},
			{DayIndex: 2, Tally: model.Tally{Gold: 2, Silver: 1, Total: 3}},
		},
		2022: {
			{DayIndex: 0, Tally: model.Tally{Total: 2, Bronze: 2}},
			{DayIndex: 1, Tally: model.Tally{Total: 8, Bronze: 2, Gold: 6}},
		},
	}
	return series.BuildAll(days, []int{2026, 2022})
}

func sampleEditions() []model.EditionRecord {
	return []model.EditionRecord{
		{Year: 2018, Tally: model.Tally{Gold: 5, Silver: 4, Bronze: 6, Total: 15}},
		{Year: 2022, Tally: model.Tally{Gold: 5, Silver: 7, Bronze: 2, Total: 14}},
	}
}

func TestNiceScale(t *testing.T) {
	Convey("Given axis maxima", t, func() {
		cases := []struct {
			max, top, step int
		}{
			{0, 1, 1},
			{1, 1, 1},
			{3, 3, 1},
			{8, 8, 2},
			{17, 20, 5},
			{42, 50, 10},
		}
		for _, c := range cases {
			top, step := niceScale(c.max)
			So(top, ShouldEqual, c.top)
			So(step, ShouldEqual, c.step)
			So(top, ShouldBeGreaterThanOrEqualTo, c.max)
		}
	})
}

func TestFrame(t *testing.T) {
	Convey("Given a line frame", t, func() {
		o := NewRasterOptions(WithSize(400, 200))
		f := NewFrame(o, 3, 10, 1, false)

		Convey("Then columns span the plot edge to edge", func() {
			So(f.X(0), ShouldEqual, float64(f.Plot.Left))
			So(f.X(2), ShouldEqual, float64(f.Plot.Right))
		})

		Convey("Then the value axis maps zero to the bottom and the top value to the top", func() {
			So(f.Y(0), ShouldEqual, float64(f.Plot.Bottom))
			So(f.Y(float64(f.YMax)), ShouldEqual, float64(f.Plot.Top))
		})

		Convey("Then missing values project to nil", func() {
			pts := f.PointsAt([]series.Dense{{intp(1), nil, intp(3)}, {nil, nil, nil}}, 1)
			So(pts[0], ShouldBeNil)
			So(pts[1], ShouldBeNil)
			pts = f.PointsAt([]series.Dense{{intp(1), nil, intp(3)}}, 2)
			So(*pts[0], ShouldEqual, f.Y(3))
		})
	})

	Convey("Given a scaled frame", t, func() {
		f := NewFrame(NewRasterOptions(WithSize(400, 200), WithScale(2)), 3, 10, 1, true)

		Convey("Then pixel sizes double", func() {
			So(f.Width, ShouldEqual, 800)
			So(f.Height, ShouldEqual, 400)
		})

		Convey("Then bars are centered in their bands", func() {
			So(f.X(0), ShouldAlmostEqual, float64(f.Plot.Left)+f.Band()/2, 0.001)
		})
	})
}

func TestComparisonRaster(t *testing.T) {
	set := sampleSet()
	styles := chartstyle.Lines("#1a1a2e", len(set.Years))

	Convey("Given a comparison chart", t, func() {
		c := NewComparison(set, model.MetricTotal, styles)

		Convey("Then lines follow the available years", func() {
			So(c.Years, ShouldResemble, []int{2026, 2022})
			So(c.YearIndex(2022), ShouldEqual, 1)
			So(c.YearIndex(1900), ShouldEqual, -1)
		})

		Convey("When the pointer sits on a line", func() {
			f := c.Frame(NewRasterOptions())
			So(interaction.Nearest(f.PointsAt(c.Lines, 0), f.Y(2), interaction.DefaultTolerance), ShouldEqual, 1)
			So(interaction.Nearest(f.PointsAt(c.Lines, 0), f.Y(1), interaction.DefaultTolerance), ShouldEqual, 0)
		})

		Convey("When the pointer is far from every line", func() {
			f := c.Frame(NewRasterOptions())
			So(interaction.Nearest(f.PointsAt(c.Lines, 2), f.Y(0), 1), ShouldEqual, -1)
		})

		Convey("When rendering at scale 2", func() {
			var buf bytes.Buffer
			err := c.Render(&buf, WithSize(360, 180), WithScale(2))
			So(err, ShouldBeNil)

			img, err := png.Decode(&buf)
			So(err, ShouldBeNil)
			So(img.Bounds().Dx(), ShouldEqual, 720)
			So(img.Bounds().Dy(), ShouldEqual, 360)
		})

		Convey("When rendering a highlighted state", func() {
			h := interaction.New(styles)
			h.Highlight(1)
			var buf bytes.Buffer
			So(c.WithStyles(h.Styles()).Render(&buf, WithoutWatermark()), ShouldBeNil)
			So(buf.Len(), ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given no data", t, func() {
		err := Comparison{}.Render(&bytes.Buffer{})
		So(errors.Is(err, ErrNoData), ShouldBeTrue)
	})
}

func TestEditionsRaster(t *testing.T) {
	Convey("Given edition records", t, func() {
		e := Editions{Records: sampleEditions()}

		Convey("Then the axis covers the tallest stack", func() {
			f := e.Frame(NewRasterOptions())
			So(f.YMax, ShouldBeGreaterThanOrEqualTo, 15)
			So(f.Columns, ShouldEqual, 2)
		})

		Convey("When rendering", func() {
			var buf bytes.Buffer
			So(e.Render(&buf), ShouldBeNil)
			img, err := png.Decode(&buf)
			So(err, ShouldBeNil)
			So(img.Bounds().Dx(), ShouldEqual, DefaultWidth)
		})
	})

	Convey("Given no editions", t, func() {
		err := Editions{}.Render(&bytes.Buffer{})
		So(errors.Is(err, ErrNoData), ShouldBeTrue)
	})
}

func TestSnippets(t *testing.T) {
	Convey("Given the interactive charts", t, func() {
		Convey("When rendering the edition bars", func() {
			s := EditionSnippet("echarts-editions", sampleEditions(), 360)

			Convey("Then the element and tooltip are present", func() {
				So(s.ID, ShouldEqual, "echarts-editions")
				So(string(s.Element), ShouldContainSubstring, "echarts-editions")
				So(string(s.Script), ShouldContainSubstring, "JO d'hiver")
				So(string(s.Script), ShouldContainSubstring, "Total : ")
				So(string(s.Script), ShouldContainSubstring, "medals")
			})
		})

		Convey("When rendering a comparison", func() {
			set := sampleSet()
			styles := chartstyle.Lines(BaseColor(model.MetricGold), len(set.Years))
			s := ComparisonSnippet("echarts-j0-gold", set, model.MetricGold, styles, 360)

			Convey("Then every year is a series in its style", func() {
				script := string(s.Script)
				So(script, ShouldContainSubstring, "2026")
				So(script, ShouldContainSubstring, "2022")
				So(script, ShouldContainSubstring, "J+2")
				So(strings.Count(script, "connectNulls"), ShouldEqual, 2)
				So(script, ShouldContainSubstring, styles[0].Color)
			})
		})
	})
}
