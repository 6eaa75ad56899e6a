package chart

import "errors"

// Sentinel kinds for chart lifecycle errors.
var (
	ErrSurfaceNotFound  = errors.New("surface not found")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrInvalidDataset   = errors.New("invalid dataset")
	ErrEmptyDataset     = errors.New("empty dataset")
	ErrUnknownKind      = errors.New("unknown chart kind")
	ErrRender           = errors.New("chart render failed")
)
