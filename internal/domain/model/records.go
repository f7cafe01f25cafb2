// Package model contains the read-only records loaded from the pre-computed
// medal JSON files and the aggregates derived from them.
package model

// Metric selects one medal column of a record.
type Metric string

// Metrics, in the order the comparison charts are laid out.
const (
	MetricTotal  Metric = "total"
	MetricGold   Metric = "gold"
	MetricSilver Metric = "silver"
	MetricBronze Metric = "bronze"
)

// Metrics lists every metric in display order.
var Metrics = []Metric{MetricTotal, MetricGold, MetricSilver, MetricBronze}

// Medals lists the three medal types, podium order.
var Medals = []Metric{MetricGold, MetricSilver, MetricBronze}

// Tally is the gold/silver/bronze/total block shared by every record.
type Tally struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
	Total  int `json:"total"`
}

// Value returns the count for m. Unknown metrics read as zero.
func (t Tally) Value(m Metric) int {
	switch m {
	case MetricGold:
		return t.Gold
	case MetricSilver:
		return t.Silver
	case MetricBronze:
		return t.Bronze
	case MetricTotal:
		return t.Total
	}
	return 0
}

// EditionRecord is one row per Olympic edition.
type EditionRecord struct {
	Year int `json:"year"`
	Tally
}

// DayRecord is one row per day since the first medal day of a Games.
// DayIndex is sparse: days without a row had no data.
type DayRecord struct {
	DayIndex int    `json:"day_index"`
	Date     string `json:"date"`
	Tally
}

// EventRecord is one event inside a SportRecord.
type EventRecord struct {
	Event string `json:"event"`
	Tally
}

// SportRecord groups medals per sport with the nested per-event breakdown.
type SportRecord struct {
	Sport  string        `json:"sport"`
	Events []EventRecord `json:"events"`
	Tally
}

// AthleteRecord is one row of the pre-ranked athlete list; rank is position+1.
type AthleteRecord struct {
	Athlete  string `json:"athlete"`
	Sport    string `json:"sport"`
	Editions []int  `json:"editions"`
	Gold     int    `json:"gold"`
	Silver   int    `json:"silver"`
	Bronze   int    `json:"bronze"`
}

// Value returns the athlete's count for a medal metric; total is the sum.
func (a AthleteRecord) Value(m Metric) int {
	switch m {
	case MetricGold:
		return a.Gold
	case MetricSilver:
		return a.Silver
	case MetricBronze:
		return a.Bronze
	case MetricTotal:
		return a.Gold + a.Silver + a.Bronze
	}
	return 0
}

// DaysByYear maps a comparison year to its day-aligned records.
type DaysByYear map[int][]DayRecord

// Last returns the final record for year, if any.
func (d DaysByYear) Last(year int) (DayRecord, bool) {
	rows := d[year]
	if len(rows) == 0 {
		return DayRecord{}, false
	}
	return rows[len(rows)-1], true
}
