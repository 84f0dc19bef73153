// Package helpers provides small numeric utilities: clamping conversions,
// range sanitizing, in-place bubble sorting of short buffers, swapping, digit
// counting and a cancellable wait.
package helpers

import (
	"cmp"
	"math"
)

// clamp restricts v to the range [lowerLimit, upperLimit].
func clamp[T cmp.Ordered](v, lowerLimit, upperLimit T) T {
	return min(max(v, lowerLimit), upperLimit)
}

// ClampInt restricts v to the range [lowerLimit, upperLimit].
func ClampInt(v, lowerLimit, upperLimit int) int {
	return clamp(v, lowerLimit, upperLimit)
}

// ClampIntToUint32 converts v to uint32 with clamping.
// Values below 0 become 0; values above math.MaxUint32 become math.MaxUint32.
func ClampIntToUint32(v int) uint32 {
	clamped := clamp(v, 0, math.MaxUint32)
	return uint32(clamped) //nolint:gosec // clamped to valid range
}
