package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	model "github.com/okian/medailles/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestTallyValue(t *testing.T) {
	convey.Convey("Given a day record", t, func() {
		var d model.DayRecord
		err := json.Unmarshal([]byte(`{"day_index":3,"date":"2026-02-09","gold":1,"silver":2,"bronze":4,"total":7}`), &d)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then each metric selects its column", func() {
			convey.So(d.DayIndex, convey.ShouldEqual, 3)
			convey.So(d.Value(model.MetricGold), convey.ShouldEqual, 1)
			convey.So(d.Value(model.MetricSilver), convey.ShouldEqual, 2)
			convey.So(d.Value(model.MetricBronze), convey.ShouldEqual, 4)
			convey.So(d.Value(model.MetricTotal), convey.ShouldEqual, 7)
			convey.So(d.Value(model.Metric("platinum")), convey.ShouldEqual, 0)
		})
	})

	convey.Convey("Given an athlete record", t, func() {
		a := model.AthleteRecord{Athlete: "Martin Fourcade", Gold: 5, Silver: 2}

		convey.Convey("Then total is derived from the medal columns", func() {
			convey.So(a.Value(model.MetricTotal), convey.ShouldEqual, 7)
			convey.So(a.Value(model.MetricBronze), convey.ShouldEqual, 0)
		})
	})
}

func TestDaysByYearLast(t *testing.T) {
	convey.Convey("Given day records for two years", t, func() {
		d := model.DaysByYear{
			2026: {{DayIndex: 0}, {DayIndex: 4, Date: "2026-02-11"}},
			2022: {},
		}

		convey.Convey("Then Last returns the final row when present", func() {
			last, ok := d.Last(2026)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(last.Date, convey.ShouldEqual, "2026-02-11")

			_, ok = d.Last(2022)
			convey.So(ok, convey.ShouldBeFalse)

			_, ok = d.Last(1924)
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}

func TestSummarize(t *testing.T) {
	convey.Convey("Given an edition table", t, func() {
		editions := []model.EditionRecord{
			{Year: 1924, Tally: model.Tally{Bronze: 3, Total: 3}},
			{Year: 1968, Tally: model.Tally{Gold: 4, Silver: 3, Bronze: 2, Total: 9}},
			{Year: 2018, Tally: model.Tally{Gold: 5, Silver: 4, Bronze: 6, Total: 15}},
		}

		convey.Convey("Then the summary carries counts and records", func() {
			s := model.Summarize(editions)
			convey.So(s.Editions, convey.ShouldEqual, 3)
			convey.So(s.TotalMedals, convey.ShouldEqual, 27)
			convey.So(s.RecordTotal, convey.ShouldEqual, 15)
			convey.So(s.RecordGold, convey.ShouldEqual, 5)
			convey.So(s.RecordSilver, convey.ShouldEqual, 4)
			convey.So(s.RecordBronze, convey.ShouldEqual, 6)
		})

		convey.Convey("Then an empty table summarizes to zeros", func() {
			convey.So(model.Summarize(nil), convey.ShouldResemble, model.EditionSummary{})
		})
	})
}

func TestValidateDays(t *testing.T) {
	convey.Convey("Given day series", t, func() {
		convey.Convey("When indexes are sparse but increasing", func() {
			err := model.ValidateDays([]model.DayRecord{{DayIndex: 0}, {DayIndex: 2}, {DayIndex: 7}})
			convey.So(err, convey.ShouldBeNil)
		})

		convey.Convey("When an index is negative", func() {
			err := model.ValidateDays([]model.DayRecord{{DayIndex: -1}})
			convey.So(errors.Is(err, model.ErrInvalidData), convey.ShouldBeTrue)
		})

		convey.Convey("When an index repeats", func() {
			err := model.ValidateDays([]model.DayRecord{{DayIndex: 1}, {DayIndex: 1}})
			convey.So(errors.Is(err, model.ErrInvalidData), convey.ShouldBeTrue)
		})

		convey.Convey("When the series is empty", func() {
			convey.So(model.ValidateDays(nil), convey.ShouldBeNil)
		})
	})
}
