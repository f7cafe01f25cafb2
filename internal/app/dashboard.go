package service

import (
	"time"

	"github.com/okian/medailles/internal/domain/model"
	"github.com/okian/medailles/internal/domain/series"
)

// Group is one independently loaded slice of the dashboard data.
type Group string

// Data groups, in load order.
const (
	GroupEditions   Group = "editions"
	GroupComparison Group = "comparison"
	GroupSports     Group = "sports"
	GroupAthletes   Group = "athletes"
)

// Groups lists every data group in load order.
var Groups = []Group{GroupEditions, GroupComparison, GroupSports, GroupAthletes}

// Dashboard is the result of one build. Fields of a failed group stay empty.
type Dashboard struct {
	BuildID string
	BuiltAt time.Time
	Years   []int

	Editions []model.EditionRecord
	Days     model.DaysByYear
	Series   series.Set
	Sports   []model.SportRecord
	Athletes []model.AthleteRecord

	errs map[Group]error
}

// Err is the error group g failed with, or nil.
func (d *Dashboard) Err(g Group) error { return d.errs[g] }

// Failed lists the groups that did not load, in load order.
func (d *Dashboard) Failed() []Group {
	var out []Group
	for _, g := range Groups {
		if d.errs[g] != nil {
			out = append(out, g)
		}
	}
	return out
}

// ActiveYear is the emphasized comparison year.
func (d *Dashboard) ActiveYear() int {
	if len(d.Years) == 0 {
		return 0
	}
	return d.Years[0]
}
