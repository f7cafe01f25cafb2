package site

import "errors"

// Sentinel kinds for site errors.
var (
	ErrServe   = errors.New("site serve failed")
	ErrRebuild = errors.New("site rebuild failed")
)
