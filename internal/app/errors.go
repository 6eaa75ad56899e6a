package service

import "errors"

// Sentinel error kinds surfaced to callers.
var (
	// ErrCountryNotFound reports that no record carries the requested name.
	ErrCountryNotFound = errors.New("country not found")
	// ErrViewClosed reports a result that arrived after its view was torn down.
	ErrViewClosed = errors.New("view closed")
	// ErrEmptyName rejects a country lookup without a name.
	ErrEmptyName = errors.New("country name is required")
)
