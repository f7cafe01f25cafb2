package model

// EditionSummary holds the headline numbers shown next to the edition chart.
type EditionSummary struct {
	Editions     int
	TotalMedals  int
	RecordTotal  int
	RecordGold   int
	RecordSilver int
	RecordBronze int
}

// Summarize folds the edition table into its display aggregates.
func Summarize(editions []EditionRecord) EditionSummary {
	s := EditionSummary{Editions: len(editions)}
	for _, e := range editions {
		s.TotalMedals += e.Total
		s.RecordTotal = max(s.RecordTotal, e.Total)
		s.RecordGold = max(s.RecordGold, e.Gold)
		s.RecordSilver = max(s.RecordSilver, e.Silver)
		s.RecordBronze = max(s.RecordBronze, e.Bronze)
	}
	return s
}
