// Package amount filters and parses user-entered
// conversion amounts.
package amount

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrNotNumeric = errors.New("amount is not a valid number")

// Filter keeps only digits and the period character,
// preserving their order. Everything else is dropped
// silently rather than rejected, so the result of
// filtering is always accepted as the new buffer value.
// Filter is idempotent: Filter(Filter(s)) == Filter(s).
//
// The number of periods is intentionally unbounded here;
// a buffer like "1.2.3" survives filtering and is caught
// later by Parse.
func Filter(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' {
			return r
		}
		return -1
	}, s)
}

// Parse converts a filtered amount buffer to a number.
// Strings strconv rejects (empty, "...", multiple periods)
// yield ErrNotNumeric instead of propagating a crash into
// the arithmetic that follows.
func Parse(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return v, nil
}
