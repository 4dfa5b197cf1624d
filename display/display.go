// Package display holds the pure formatting helpers
// the conversion screen renders with.
package display

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/daehee-lim/fxview/model"
)

const timestampLayout = "2006-01-02 / 15:04:05"

var ErrNotFinite = errors.New("value is not a finite number")

// GroupedFixed2 renders v with thousands grouping and
// exactly two fraction digits, flooring the third digit
// instead of rounding: 13000000 -> "13,000,000.00",
// 1.999 -> "1.99".
func GroupedFixed2(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("%w: %v", ErrNotFinite, v)
	}

	fixed := decimal.NewFromFloat(v).RoundFloor(2).StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}

	// fixed is now "<integer>.<two digits>"
	dot := strings.IndexByte(fixed, '.')
	grouped := group(fixed[:dot]) + fixed[dot:]

	if neg {
		return "-" + grouped, nil
	}

	return grouped, nil
}

// group inserts a comma before every group of
// three digits, counting from the right
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder

	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}

	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}

// Timestamp renders a unix timestamp in UTC
// using the screen's fixed pattern,
// e.g. "2023-11-14 / 22:13:20"
func Timestamp(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(timestampLayout)
}

// Balance renders the fetched rate header line,
// e.g. "1300.00 KRW / USD"
func Balance(q model.RateQuote) string {
	return fmt.Sprintf("%.2f %s / %s", q.Rate, q.Pair.Destination, q.Pair.Source)
}
