package page

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/okian/medailles/internal/domain/model"
)

// medalPalette is the fill, highlight, outline and ribbon of one medal.
type medalPalette struct {
	Main, Light, Dark, Ribbon string
}

var palettes = map[model.Metric]medalPalette{
	model.MetricGold:   {Main: "#c9a24d", Light: "#e8d9b0", Dark: "#a07a2a", Ribbon: "#c2382d"},
	model.MetricSilver: {Main: "#9ba8b5", Light: "#d0d7de", Dark: "#6e7e8c", Ribbon: "#2a6cb5"},
	model.MetricBronze: {Main: "#b07d56", Light: "#d9c1ab", Dark: "#8a5c36", Ribbon: "#2a8c5a"},
}

const largeMedal = `<svg width="44" height="62" viewBox="0 0 44 62" fill="none" xmlns="http://www.w3.org/2000/svg">` +
	`<path d="M16 0 L22 20 L28 0" stroke="%[4]s" stroke-width="6" fill="none" stroke-linecap="round"/>` +
	`<circle cx="22" cy="34" r="16" fill="%[1]s" stroke="%[3]s" stroke-width="1.5"/>` +
	`<circle cx="22" cy="34" r="11.5" fill="none" stroke="%[2]s" stroke-width="1" opacity="0.7"/>` +
	`<circle cx="22" cy="34" r="6" fill="none" stroke="%[2]s" stroke-width="0.8" opacity="0.4"/>` +
	`<circle cx="18" cy="30" r="3" fill="%[2]s" opacity="0.25"/>` +
	`</svg>`

const miniMedal = `<svg viewBox="0 0 44 62" fill="none" xmlns="http://www.w3.org/2000/svg">` +
	`<path d="M16 0 L22 20 L28 0" stroke="%[4]s" stroke-width="6" fill="none" stroke-linecap="round"/>` +
	`<circle cx="22" cy="34" r="16" fill="%[1]s" stroke="%[3]s" stroke-width="1.5"/>` +
	`<circle cx="22" cy="34" r="11.5" fill="none" stroke="%[2]s" stroke-width="1" opacity="0.7"/>` +
	`<circle cx="18" cy="30" r="3" fill="%[2]s" opacity="0.25"/>` +
	`</svg>`

func medalSVG(layout string, m model.Metric) string {
	p, ok := palettes[m]
	if !ok {
		return ""
	}
	return fmt.Sprintf(layout, p.Main, p.Light, p.Dark, p.Ribbon)
}

// MedalSVG is the large showcase medal of kind m.
func MedalSVG(m model.Metric) template.HTML {
	return template.HTML(medalSVG(largeMedal, m)) //nolint:gosec // constant markup
}

// MiniMedalSVG is the compact list medal of kind m.
func MiniMedalSVG(m model.Metric) template.HTML {
	return template.HTML(medalSVG(miniMedal, m)) //nolint:gosec // constant markup
}

// Showcase repeats the large medal count times; zero yields nothing.
func Showcase(m model.Metric, count int) template.HTML {
	if count <= 0 {
		return ""
	}
	icon := `<span class="medal-icon">` + medalSVG(largeMedal, m) + `</span>`
	return template.HTML(strings.Repeat(icon, count)) //nolint:gosec // constant markup
}

// MedalIcons lays out gold, then silver, then bronze mini medals, each
// wrapped in a span of class cssClass.
func MedalIcons(gold, silver, bronze int, cssClass string) template.HTML {
	var b strings.Builder
	open := `<span class="` + template.HTMLEscapeString(cssClass) + `">`
	for _, n := range []struct {
		m     model.Metric
		count int
	}{{model.MetricGold, gold}, {model.MetricSilver, silver}, {model.MetricBronze, bronze}} {
		for i := 0; i < n.count; i++ {
			b.WriteString(open)
			b.WriteString(medalSVG(miniMedal, n.m))
			b.WriteString(`</span>`)
		}
	}
	return template.HTML(b.String()) //nolint:gosec // escaped class, constant markup
}
