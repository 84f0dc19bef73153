package helpers

import (
	"cmp"
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Sanitize returns value when it lies within [lowerLimit, upperLimit] and
// fallback otherwise.
func Sanitize[T cmp.Ordered](value, fallback, lowerLimit, upperLimit T) T {
	if value < lowerLimit || value > upperLimit {
		return fallback
	}
	return value
}

// Swap exchanges the values a and b point to.
func Swap[T any](a, b *T) {
	*a, *b = *b, *a
}

// SortBubbleAsc sorts the first n items of buf in ascending order.
// n is clamped to len(buf); items past n are left untouched.
func SortBubbleAsc[T cmp.Ordered](buf []T, n int) {
	bubbleSort(buf, n, func(a, b T) bool { return a < b })
}

// SortBubbleDesc sorts the first n items of buf in descending order.
func SortBubbleDesc[T cmp.Ordered](buf []T, n int) {
	bubbleSort(buf, n, func(a, b T) bool { return a > b })
}

// bubbleSort moves the smallest remaining item (by less) to the front on each
// pass and stops early once a pass makes no swap.
func bubbleSort[T any](buf []T, n int, less func(a, b T) bool) {
	n = ClampInt(n, 0, len(buf))
	again := true
	for i := 0; i < n-1 && again; i++ {
		again = false
		for j := n - 1; j > i; j-- {
			if less(buf[j], buf[j-1]) {
				Swap(&buf[j], &buf[j-1])
				again = true
			}
		}
	}
}

// CalculateDigits returns the number of decimal digits of |n|. Zero has one digit.
func CalculateDigits(n int64) uint8 {
	u := uint64(n) //nolint:gosec // two's complement handled below
	if n < 0 {
		u = -u
	}
	var digits uint8 = 1
	for u >= 10 {
		u /= 10
		digits++
	}
	return digits
}

// Wait blocks for d on clock, returning early with the context error if ctx
// ends first.
func Wait(ctx context.Context, clock clockwork.Clock, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}
