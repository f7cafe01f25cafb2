package text

import (
	"fmt"
	"strings"

	"github.com/okian/medailles/internal/domain/model"
	"github.com/okian/medailles/internal/domain/series"
)

// YearValue is a past edition's count at the same day index.
type YearValue struct {
	Year  int
	Value int
}

// Stats is the comparison sentence under a day-aligned chart.
type Stats struct {
	Metric model.Metric
	Value  int
	Day    int
	Past   []YearValue
}

// BuildStats compares the active year's latest count with the other years'
// counts on the same day. Years without a record on that day are skipped.
func BuildStats(days model.DaysByYear, years []int, active int, m model.Metric) (Stats, bool) {
	last, ok := days.Last(active)
	if !ok {
		return Stats{}, false
	}
	s := Stats{Metric: m, Value: last.Value(m), Day: last.DayIndex}
	for _, y := range years {
		if y == active || len(days[y]) == 0 {
			continue
		}
		if v, ok := series.ValueAtDay(days[y], last.DayIndex, m); ok {
			s.Past = append(s.Past, YearValue{Year: y, Value: v})
		}
	}
	return s, true
}

// Badge is the highlighted count, e.g. "5 médailles d'or".
func (s Stats) Badge() string {
	return fmt.Sprintf("%d %s", s.Value, MedalLabel(s.Metric, s.Value))
}

// Lead is the first sentence without the badge split out.
func (s Stats) Lead() (before, after string) {
	return "La France a remporté", fmt.Sprintf("pour le moment (J+%d).", s.Day)
}

// PastSentence is "C'était 3 en 2022 et 2 en 2018 à la même période.", or
// empty when no past year has a value that day.
func (s Stats) PastSentence() string {
	if len(s.Past) == 0 {
		return ""
	}
	parts := make([]string, len(s.Past))
	for i, p := range s.Past {
		parts[i] = fmt.Sprintf("%d en %d", p.Value, p.Year)
	}
	return "C'était " + JoinFrench(parts) + " à la même période."
}

// Plain is the whole paragraph as one line of text; it is the export subtitle.
func (s Stats) Plain() string {
	before, after := s.Lead()
	out := []string{before, s.Badge(), after}
	if p := s.PastSentence(); p != "" {
		out = append(out, p)
	}
	return strings.Join(out, " ")
}
