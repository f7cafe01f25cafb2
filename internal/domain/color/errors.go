package color

import "errors"

// ErrInvalidColor is returned by Parse for strings that are neither #rrggbb nor rgba().
var ErrInvalidColor = errors.New("invalid color")
