package text

import (
	"regexp"
	"strings"
)

// FilePrefix starts every exported image name.
const FilePrefix = "france-medailles-"

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases title and collapses each run of characters outside
// [a-z0-9] into a single hyphen.
func Slug(title string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(title), "-")
}

// ExportFilename is the download name of a chart image.
func ExportFilename(title string) string {
	return FilePrefix + Slug(title) + ".png"
}

// Measurer reports the rendered width of a string.
type Measurer interface {
	Measure(s string) float64
}

// MeasureFunc adapts a plain function to Measurer.
type MeasureFunc func(s string) float64

// Measure implements Measurer.
func (f MeasureFunc) Measure(s string) float64 { return f(s) }

// Wrap breaks text on spaces greedily: a word joins the current line unless
// that would exceed maxWidth, in which case it starts a new line. A word
// wider than maxWidth still gets a line of its own.
func Wrap(m Measurer, text string, maxWidth float64) []string {
	var lines []string
	line := ""
	for _, w := range strings.Split(text, " ") {
		test := w
		if line != "" {
			test = line + " " + w
		}
		if line != "" && m.Measure(test) > maxWidth {
			lines = append(lines, line)
			line = w
			continue
		}
		line = test
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
