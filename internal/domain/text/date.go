package text

import (
	"fmt"
	"time"
)

var monthsFR = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// DateFR formats an ISO date (YYYY-MM-DD) as "16 février 2026".
func DateFR(iso string) (string, error) {
	t, err := time.Parse(time.DateOnly, iso)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", iso, err)
	}
	return fmt.Sprintf("%d %s %d", t.Day(), monthsFR[t.Month()-1], t.Year()), nil
}

// UpdatedAt is the footer line for the latest data date.
func UpdatedAt(iso string) (string, error) {
	d, err := DateFR(iso)
	if err != nil {
		return "", err
	}
	return "Données à jour au " + d, nil
}
