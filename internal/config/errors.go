package config

import "errors"

// Validation sentinel errors. Validate wraps these with the offending value
// so callers can branch with errors.Is while users still see what was wrong.
var (
	// ErrInvalidColorCount is returned when the requested palette size is
	// outside [MinColorCount, MaxColorCount].
	ErrInvalidColorCount = errors.New("invalid color count")

	// ErrInvalidSmoothingLevel is returned for smoothing levels other than
	// low, medium, or high.
	ErrInvalidSmoothingLevel = errors.New("invalid smoothing level")

	// ErrInvalidPathSimplification is returned when the tolerance scale is
	// outside [MinPathSimplification, MaxPathSimplification].
	ErrInvalidPathSimplification = errors.New("invalid path simplification")

	// ErrInvalidAlgorithm is returned for algorithm names other than auto,
	// shapes, photo, or lineart.
	ErrInvalidAlgorithm = errors.New("invalid algorithm")
)
