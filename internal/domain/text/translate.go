// Package text holds the French display strings of the dashboard: sport and
// event translations, medal labels, the comparison sentence, export file
// names, word wrapping and dates.
package text

import (
	"regexp"
	"strings"
)

// sportFR translates sport names as they appear in the source data.
var sportFR = map[string]string{
	"Alpine Skiing":             "Ski alpin",
	"Biathlon":                  "Biathlon",
	"Freestyle Skiing":          "Ski acrobatique",
	"Figure Skating":            "Patinage artistique",
	"Snowboarding":              "Snowboard",
	"Cross Country Skiing":      "Ski de fond",
	"Nordic Combined":           "Combiné nordique",
	"Bobsleigh":                 "Bobsleigh",
	"Ski Jumping":               "Saut à ski",
	"Military Ski Patrol":       "Patrouille militaire",
	"Curling":                   "Curling",
	"Short Track Speed Skating": "Short-track",
	"Speed Skating":             "Patinage de vitesse",
	"Ice Hockey":                "Hockey sur glace",
	"Luge":                      "Luge",
	"Skeleton":                  "Skeleton",
}

// Sport returns the French sport name, or name unchanged when unknown.
func Sport(name string) string {
	if fr, ok := sportFR[name]; ok {
		return fr
	}
	return name
}

type suffixRule struct {
	re   *regexp.Regexp
	repl string
}

var genderSuffixes = []suffixRule{
	{regexp.MustCompile(`, Men$`), " (H)"},
	{regexp.MustCompile(`, Women$`), " (F)"},
	{regexp.MustCompile(`, Mixed$`), " (mixte)"},
}

// eventTerms are applied in order; longer phrases precede the words they contain.
var eventTerms = [][2]string{
	{"Downhill", "Descente"},
	{"Parallel Giant Slalom", "Slalom géant parallèle"},
	{"Giant Slalom", "Slalom géant"},
	{"Super G", "Super-G"},
	{"Combined", "Combiné"},
	{"Relay", "Relais"},
	{"Pursuit", "Poursuite"},
	{"Mass Start", "Départ en masse"},
	{"Moguls", "Bosses"},
	{"Ski Cross", "Skicross"},
	{"Aerials", "Sauts"},
	{"Big Air", "Big air"},
	{"Ice Dancing", "Danse sur glace"},
	{"Pairs", "Couples"},
	{"Singles", "Individuel"},
	{"Individual", "Individuel"},
	{"Normal Hill", "Petit tremplin"},
	{"Team Sprint", "Sprint par équipes"},
	{"Team", "Équipe"},
	{"Four", "Bob à quatre"},
	{"kilometres", "km"},
}

// Event translates an event name: gender suffix first, then discipline terms.
// Terms without a translation pass through.
func Event(name string) string {
	for _, r := range genderSuffixes {
		name = r.re.ReplaceAllString(name, r.repl)
	}
	for _, t := range eventTerms {
		name = strings.ReplaceAll(name, t[0], t[1])
	}
	return name
}
