package charts

import (
	"errors"
)

// Sentinel kinds for chart errors.
var (
	ErrNoData = errors.New("no chart data")
	ErrRender = errors.New("chart render failed")
)
