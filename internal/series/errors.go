package series

import "errors"

var (
	// ErrInvalidParameter marks a precondition violation on an entire call,
	// such as an even smoothing window or a non-positive extrema distance.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrZeroRange is returned by Normalize when every value in the series
	// is equal, making min-max scaling a division by zero.
	ErrZeroRange = errors.New("series has zero range")
)
