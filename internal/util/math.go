package util

import (
	"golang.org/x/exp/constraints"
)

// Signed covers all number types that can carry a sign
type Signed interface {
	constraints.Signed | constraints.Float
}

// Sign returns -1, 0 or 1 depending on the sign of the given value
func Sign[T Signed](value T) T {
	switch {
	case value > 0:
		return 1
	case value < 0:
		return -1
	default:
		return 0
	}
}

// Abs returns the absolute value of the given value
func Abs[T Signed](value T) T {
	if value < 0 {
		return -value
	}
	return value
}

// Coerce returns a value that is at least min and at most max
func Coerce[T constraints.Ordered](value, min, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// RescaleTo scales alpha and beta by the same factor, so that neither of them
// exceeds max. If both are already within bounds they are returned unchanged.
// Both inputs are expected to be magnitudes (>= 0).
func RescaleTo(max, alpha, beta int) (int, int) {
	if alpha <= max && beta <= max {
		return alpha, beta
	}

	larger := alpha
	if beta > alpha {
		larger = beta
	}
	return alpha * max / larger, beta * max / larger
}

// SmoothThirds blends a new measurement into the previous value,
// weighting the previous value twice as much as the new one
func SmoothThirds(previous, current float64) float64 {
	return (2*previous + current) / 3
}
