package draw

import "errors"

var (
	// ErrZeroDenom indicates a bucket with zero sub-buckets.
	ErrZeroDenom = errors.New("draw: denom must be at least 1")
)
