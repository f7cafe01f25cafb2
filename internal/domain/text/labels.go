package text

import (
	"fmt"
	"strings"

	"github.com/okian/medailles/internal/domain/model"
)

// Fallback is shown in a metadata slot whose data group failed to load.
const Fallback = "Impossible de charger les données."

// Edition chart heading and intro; the export of that chart reuses them.
const (
	EditionsTitle = "Les médailles de la France aux Jeux d'hiver"
	EditionsIntro = "Or, argent et bronze remportés par la délégation française à chaque édition des Jeux olympiques d'hiver depuis 1924."
)

// SiteName is the default export heading.
const SiteName = "France Médailles"

var medalSingular = map[model.Metric]string{
	model.MetricTotal:  "médaille au total",
	model.MetricGold:   "médaille d'or",
	model.MetricSilver: "médaille d'argent",
	model.MetricBronze: "médaille de bronze",
}

var medalPlural = map[model.Metric]string{
	model.MetricTotal:  "médailles au total",
	model.MetricGold:   "médailles d'or",
	model.MetricSilver: "médailles d'argent",
	model.MetricBronze: "médailles de bronze",
}

var metricTitle = map[model.Metric]string{
	model.MetricTotal:  "Total",
	model.MetricGold:   "Or",
	model.MetricSilver: "Argent",
	model.MetricBronze: "Bronze",
}

// MedalLabel returns the noun phrase for count medals of kind m.
func MedalLabel(m model.Metric, count int) string {
	if count >= 2 {
		return medalPlural[m]
	}
	return medalSingular[m]
}

// MetricTitle is the short heading of a metric ("Or", "Argent", ...).
func MetricTitle(m model.Metric) string { return metricTitle[m] }

// ComparisonTitle is the export title of a day-aligned comparison chart.
func ComparisonTitle(m model.Metric) string {
	return "Les médailles par jour de compétition : " + strings.ToLower(metricTitle[m])
}

// EditionTooltipTitle heads the edition chart tooltip.
func EditionTooltipTitle(year string) string { return "JO d'hiver " + year }

// EditionMeta lists the headline facts shown next to the edition chart.
func EditionMeta(s model.EditionSummary) []string {
	return []string{
		fmt.Sprintf("%d éditions", s.Editions),
		fmt.Sprintf("%d médailles au total", s.TotalMedals),
		fmt.Sprintf("Record : %d médailles", s.RecordTotal),
		fmt.Sprintf("Record par type : 🥇 %d  🥈 %d  🥉 %d", s.RecordGold, s.RecordSilver, s.RecordBronze),
	}
}

// JoinFrench joins items as "a, b et c".
func JoinFrench(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " et " + items[len(items)-1]
}
