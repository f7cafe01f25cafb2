package model

import "fmt"

// ValidateDays checks that a day-aligned series can be placed on a shared axis:
// day indexes are non-negative and strictly increasing.
func ValidateDays(rows []DayRecord) error {
	prev := -1
	for i, r := range rows {
		if r.DayIndex < 0 {
			return fmt.Errorf("%w: row %d has negative day_index %d", ErrInvalidData, i, r.DayIndex)
		}
		if r.DayIndex <= prev {
			return fmt.Errorf("%w: row %d day_index %d not after %d", ErrInvalidData, i, r.DayIndex, prev)
		}
		prev = r.DayIndex
	}
	return nil
}
