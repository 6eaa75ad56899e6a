package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrMissingName  = errors.New("missing country name")
	ErrBadIndex     = errors.New("index must be an integer")
	ErrEmptySurface = errors.New("nothing drawn on surface")
)
