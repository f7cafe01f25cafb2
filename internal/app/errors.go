package service

import (
	"errors"
)

// Sentinel kinds for service errors.
var (
	ErrUnknownChart = errors.New("unknown chart")
	ErrUnknownYear  = errors.New("year not drawn on chart")
	ErrGroupFailed  = errors.New("data group unavailable")
	ErrWrite        = errors.New("site write failed")
)
