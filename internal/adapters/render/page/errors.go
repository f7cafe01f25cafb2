package page

import (
	"errors"
)

// Sentinel kinds for page errors.
var (
	ErrRender = errors.New("page render failed")
	ErrAssets = errors.New("page assets write failed")
)
