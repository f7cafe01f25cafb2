package page

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/okian/medailles/internal/domain/model"
	"github.com/okian/medailles/internal/domain/text"
)

// SportRow is one collapsible sport in the accordion.
type SportRow struct {
	ID     string
	Name   string
	Medals template.HTML
	Total  int
	Events []EventRow
}

// EventRow is one event nested under a sport.
type EventRow struct {
	Name   string
	Medals template.HTML
	Total  int
}

// AthleteRow is one ranked athlete.
type AthleteRow struct {
	Rank      int
	RankClass string
	Name      string
	Detail    string
	Medals    template.HTML
}

// SportRows translates and lays out the per-sport breakdown in input order.
func SportRows(sports []model.SportRecord) []SportRow {
	rows := make([]SportRow, len(sports))
	for idx, s := range sports {
		row := SportRow{
			ID:     "sport-row-" + strconv.Itoa(idx),
			Name:   text.Sport(s.Sport),
			Medals: MedalIcons(s.Gold, s.Silver, s.Bronze, "sport-medal-icon"),
			Total:  s.Total,
		}
		for _, ev := range s.Events {
			row.Events = append(row.Events, EventRow{
				Name:   text.Event(ev.Event),
				Medals: MedalIcons(ev.Gold, ev.Silver, ev.Bronze, "event-medal-icon"),
				Total:  ev.Total,
			})
		}
		rows[idx] = row
	}
	return rows
}

// AthleteRows ranks athletes by input position; the podium gets its own class.
func AthleteRows(athletes []model.AthleteRecord) []AthleteRow {
	rows := make([]AthleteRow, len(athletes))
	for idx, a := range athletes {
		rank := idx + 1
		cls := "athlete-rank"
		if rank <= 3 {
			cls += " athlete-rank--" + strconv.Itoa(rank)
		}
		editions := make([]string, len(a.Editions))
		for i, y := range a.Editions {
			editions[i] = strconv.Itoa(y)
		}
		rows[idx] = AthleteRow{
			Rank:      rank,
			RankClass: cls,
			Name:      a.Athlete,
			Detail:    text.Sport(a.Sport) + " · " + strings.Join(editions, ", "),
			Medals:    MedalIcons(a.Gold, a.Silver, a.Bronze, "athlete-medal-icon"),
		}
	}
	return rows
}
