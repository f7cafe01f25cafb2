// Package series reshapes sparse per-day records into dense, gap-filled
// arrays aligned on a shared day-index axis.
package series

import (
	"strconv"

	"github.com/okian/medailles/internal/domain/model"
)

// DefaultYears are the comparison editions, most recent (active) first.
var DefaultYears = []int{2026, 2022, 2018, 2014, 2010, 2006, 2002, 1998, 1994, 1992}

// Dense is one year's values indexed by day; nil means no record that day.
type Dense []*int

// ByYear maps a year to its dense series. All entries share one length.
type ByYear map[int]Dense

// Set is the dense series for every metric, plus the shared axis labels.
type Set struct {
	MaxDay  int
	Labels  []string
	Years   []int
	Metrics map[model.Metric]ByYear
}

// MaxDay returns the largest last day_index across the years with data,
// or -1 when none has any.
func MaxDay(days model.DaysByYear) int {
	maxDay := -1
	for year := range days {
		if last, ok := days.Last(year); ok && last.DayIndex > maxDay {
			maxDay = last.DayIndex
		}
	}
	return maxDay
}

// Labels returns "J+0" .. "J+maxDay".
func Labels(maxDay int) []string {
	if maxDay < 0 {
		return nil
	}
	out := make([]string, maxDay+1)
	for i := range out {
		out[i] = "J+" + strconv.Itoa(i)
	}
	return out
}

// Available filters years down to those with at least one record, keeping order.
func Available(days model.DaysByYear, years []int) []int {
	out := make([]int, 0, len(years))
	for _, y := range years {
		if len(days[y]) > 0 {
			out = append(out, y)
		}
	}
	return out
}

// Build places every record's metric value at its day_index in an array of
// length maxDay+1, one per available year. Missing days stay nil.
func Build(days model.DaysByYear, years []int, metric model.Metric) ByYear {
	return build(days, Available(days, years), MaxDay(days), metric)
}

// BuildAll builds every metric against a single axis.
func BuildAll(days model.DaysByYear, years []int) Set {
	maxDay := MaxDay(days)
	avail := Available(days, years)
	s := Set{
		MaxDay:  maxDay,
		Labels:  Labels(maxDay),
		Years:   avail,
		Metrics: make(map[model.Metric]ByYear, len(model.Metrics)),
	}
	for _, m := range model.Metrics {
		s.Metrics[m] = build(days, avail, maxDay, m)
	}
	return s
}

func build(days model.DaysByYear, years []int, maxDay int, metric model.Metric) ByYear {
	out := make(ByYear, len(years))
	for _, y := range years {
		values := make(Dense, maxDay+1)
		for _, r := range days[y] {
			if r.DayIndex < 0 || r.DayIndex > maxDay {
				continue
			}
			v := r.Value(metric)
			values[r.DayIndex] = &v
		}
		out[y] = values
	}
	return out
}

// ValueAtDay returns the metric value recorded exactly on day.
func ValueAtDay(rows []model.DayRecord, day int, metric model.Metric) (int, bool) {
	for _, r := range rows {
		if r.DayIndex == day {
			return r.Value(metric), true
		}
	}
	return 0, false
}

// Max returns the largest non-nil value across every year.
func (b ByYear) Max() int {
	m := 0
	for _, d := range b {
		for _, v := range d {
			if v != nil && *v > m {
				m = *v
			}
		}
	}
	return m
}

// Segments splits a dense series into runs of consecutive non-nil days.
// Isolated points form single-value segments.
func (d Dense) Segments() []Segment {
	var out []Segment
	var cur *Segment
	for i, v := range d {
		if v == nil {
			cur = nil
			continue
		}
		if cur == nil {
			out = append(out, Segment{Start: i})
			cur = &out[len(out)-1]
		}
		cur.Values = append(cur.Values, *v)
	}
	return out
}

// Segment is a gap-free run of a dense series.
type Segment struct {
	Start  int
	Values []int
}
