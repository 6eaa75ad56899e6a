package dataset

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrFetch reports that the record set could not be obtained or decoded.
	ErrFetch = errors.New("unable to load data")
)
