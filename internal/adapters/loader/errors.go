package loader

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrLoad   = errors.New("load failed")
	ErrDecode = errors.New("decode failed")
	ErrSource = errors.New("invalid data source")
)
