package units

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnknownCategory is returned for a category id not in the tables.
	ErrUnknownCategory = errors.New("unknown unit category")
	// ErrUnknownUnit is returned when a unit code is not part of the category.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrNotFinite is returned for NaN or infinite inputs and results.
	ErrNotFinite = errors.New("value is not a finite number")
)

// Convert converts value between two units of the same category.
// Linear categories normalize to the base unit and back; temperature pivots
// through Celsius.
func Convert(value float64, from, to string, category CategoryID) (float64, error) {
	cat, ok := Lookup(category)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	fromUnit, ok := cat.Unit(from)
	if !ok {
		return 0, fmt.Errorf("%w: %q in %s", ErrUnknownUnit, from, category)
	}
	toUnit, ok := cat.Unit(to)
	if !ok {
		return 0, fmt.Errorf("%w: %q in %s", ErrUnknownUnit, to, category)
	}
	if !finite(value) {
		return 0, ErrNotFinite
	}
	if from == to {
		return value, nil
	}

	var result float64
	if cat.Affine {
		result = fromCelsius(toCelsius(value, fromUnit.Code), toUnit.Code)
	} else {
		base := value * fromUnit.Factor
		result = base / toUnit.Factor
	}
	if !finite(result) {
		return 0, ErrNotFinite
	}
	return result, nil
}

func toCelsius(v float64, unit string) float64 {
	switch unit {
	case Fahrenheit:
		return (v - 32) * 5 / 9
	case Kelvin:
		return v - 273.15
	default:
		return v
	}
}

func fromCelsius(c float64, unit string) float64 {
	switch unit {
	case Fahrenheit:
		return c*9/5 + 32
	case Kelvin:
		return c + 273.15
	default:
		return c
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
