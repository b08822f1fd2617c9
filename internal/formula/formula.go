// Package formula implements the closed-form calculators. Every function
// takes an input struct and returns a result struct, or an error wrapping
// ErrInvalidInput when the input is incomplete or out of domain.
package formula

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput marks input the caller should not display a result for.
var ErrInvalidInput = errors.New("invalid input")

// invalid wraps ErrInvalidInput with the offending field.
func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, fmt.Sprintf(format, args...))
}

// round rounds v to the given number of decimal places.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// errTooLarge reports a result that overflowed to Inf or NaN.
var errTooLarge = invalid("result", "is too large to compute")

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
