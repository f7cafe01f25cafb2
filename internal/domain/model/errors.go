package model

import "errors"

// ErrInvalidData marks loaded records that break the shape the renderers rely on.
var ErrInvalidData = errors.New("invalid medal data")
