package export

import (
	"errors"
)

// Sentinel kinds for export errors.
var (
	ErrFont   = errors.New("export font unavailable")
	ErrEncode = errors.New("export encode failed")
	ErrChart  = errors.New("export chart image missing")
)
