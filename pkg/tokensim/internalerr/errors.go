package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrMissingMetric      = errors.New("auxiliary metric required")
	ErrInvalidThreshold   = errors.New("threshold outside [0,1]")
	ErrInvalidTokenLength = errors.New("negative token length")
)
