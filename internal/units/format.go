package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	expUpper        = 1e6
	expLower        = 1e-4
	expDigits       = 4
	maxFractionDigs = 6
)

var printer = message.NewPrinter(language.English)

// Format renders a conversion result for display. Magnitudes at or above 1e6
// and non-zero magnitudes below 1e-4 use exponential notation with four
// fraction digits; everything else is grouped decimal with at most six
// fraction digits.
func Format(v float64) string {
	if !finite(v) {
		return "-"
	}
	abs := math.Abs(v)
	if abs >= expUpper || (abs != 0 && abs < expLower) {
		return exponential(v)
	}
	// Decimal output rounds to six places, which can carry into 1e6.
	p := math.Pow10(maxFractionDigs)
	if math.Abs(math.Round(v*p)/p) >= expUpper {
		return exponential(v)
	}
	return printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(maxFractionDigs)))
}

// exponential mirrors the short exponent form (1.2346e+6) rather than Go's
// two-digit exponent (1.2346e+06).
func exponential(v float64) string {
	s := strconv.FormatFloat(v, 'e', expDigits, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}

// Parse reads a user-entered number. Empty, non-numeric and non-finite
// inputs are rejected so callers can suppress the result.
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty input")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if !finite(v) {
		return 0, ErrNotFinite
	}
	return v, nil
}
