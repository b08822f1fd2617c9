// Package calc dispatches calculator requests by catalog slug. Each
// calculator decodes a JSON body, validates it and runs one formula.
package calc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"time"

	"github.com/hyperjump/hitung/internal/formula"
	"github.com/hyperjump/hitung/internal/models"
	"github.com/hyperjump/hitung/internal/units"
)

var (
	// ErrUnknownCalculator is returned for a slug with no compute function.
	ErrUnknownCalculator = errors.New("unknown calculator")
	// ErrBadBody is returned when the request body is not valid JSON for
	// the calculator.
	ErrBadBody = errors.New("invalid request body")
)

// Func decodes a request body and computes its result.
type Func func(body io.Reader) (any, error)

// Registry maps slugs to calculators.
type Registry struct {
	calcs map[string]Func
	now   func() time.Time
}

// New creates a registry. now supplies "today" for the age calculator; nil
// uses time.Now.
func New(now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	r := &Registry{now: now}
	r.calcs = r.build()
	return r
}

// Run computes the calculator named slug from body.
func (r *Registry) Run(slug string, body io.Reader) (any, error) {
	fn, ok := r.calcs[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCalculator, slug)
	}
	return fn(body)
}

// Has reports whether slug has a compute function.
func (r *Registry) Has(slug string) bool {
	_, ok := r.calcs[slug]
	return ok
}

// Slugs returns every registered slug, sorted.
func (r *Registry) Slugs() []string {
	out := make([]string, 0, len(r.calcs))
	for slug := range r.calcs {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

// run builds a calculator from a request type and the function computing
// its result.
func run[T any](fn func(T) (any, error)) Func {
	return func(body io.Reader) (any, error) {
		var in T
		dec := json.NewDecoder(body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadBody, err)
		}
		if err := models.Validate(&in); err != nil {
			return nil, err
		}
		out, err := fn(in)
		if err != nil {
			return nil, err
		}
		if !finiteValue(reflect.ValueOf(out)) {
			return nil, fmt.Errorf("%w: result is too large to compute", formula.ErrInvalidInput)
		}
		return out, nil
	}
}

// finiteValue reports whether every float reachable from v is finite.
func finiteValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	case reflect.Pointer, reflect.Interface:
		return v.IsNil() || finiteValue(v.Elem())
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !finiteValue(v.Field(i)) {
				return false
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !finiteValue(v.Index(i)) {
				return false
			}
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if !finiteValue(iter.Value()) {
				return false
			}
		}
	}
	return true
}

// plain adapts a formula taking its own input type.
func plain[T, R any](fn func(T) (R, error)) Func {
	return run(func(in T) (any, error) { return fn(in) })
}

func (r *Registry) build() map[string]Func {
	calcs := map[string]Func{
		"simple": run(func(in models.ArithmeticRequest) (any, error) {
			v, err := formula.Arithmetic(in.A, in.Op, in.B)
			if err != nil {
				return nil, err
			}
			return models.ArithmeticResponse{Result: v, Formatted: units.Format(v)}, nil
		}),
		"percentage": plain(formula.Percentage),
		"discount":   plain(formula.Discount),
		"average": run(func(in models.AverageRequest) (any, error) {
			return formula.Average(in.Values)
		}),
		"fraction": plain(formula.Fraction),
		"random": run(func(in formula.RandomInput) (any, error) {
			return formula.RandomInts(in, nil)
		}),

		"emi": run(func(in models.EMIRequest) (any, error) {
			res, err := formula.EMI(in.EMIInput)
			if err != nil {
				return nil, err
			}
			out := models.EMIResponse{EMIResult: res}
			if in.Schedule {
				if out.Schedule, err = formula.Amortization(in.EMIInput); err != nil {
					return nil, err
				}
			}
			return out, nil
		}),
		"gst":               plain(formula.GST),
		"sip":               plain(formula.SIP),
		"compound-interest": plain(formula.CompoundInterest),
		"simple-interest":   plain(formula.SimpleInterest),

		"bmi":          plain(formula.BMI),
		"bmr":          plain(formula.BMR),
		"calories":     plain(formula.Calories),
		"ideal-weight": plain(formula.IdealWeight),
		"body-fat":     plain(formula.BodyFat),

		"age": run(func(in models.AgeRequest) (any, error) {
			birth, err := parseDate("birth_date", in.BirthDate)
			if err != nil {
				return nil, err
			}
			today := r.now().UTC()
			if in.Today != "" {
				if today, err = parseDate("today", in.Today); err != nil {
					return nil, err
				}
			}
			return formula.Age(birth, today)
		}),
		"days-between": run(func(in models.DaysBetweenRequest) (any, error) {
			a, err := parseDate("start", in.Start)
			if err != nil {
				return nil, err
			}
			b, err := parseDate("end", in.End)
			if err != nil {
				return nil, err
			}
			return formula.DaysBetween(a, b), nil
		}),
		"add-days": run(func(in models.ShiftDateRequest) (any, error) {
			start, err := parseDate("start", in.Start)
			if err != nil {
				return nil, err
			}
			return formula.ShiftDate(formula.ShiftDateInput{
				Start:    start,
				Years:    in.Years,
				Months:   in.Months,
				Weeks:    in.Weeks,
				Days:     in.Days,
				Subtract: in.Operation == "subtract",
			})
		}),
		"time-duration": run(func(in models.DurationRequest) (any, error) {
			return formula.Duration(in.Start, in.End)
		}),

		"password": plain(formula.Password),
	}

	// Every unit category doubles as a converter slug.
	for _, cat := range units.Categories() {
		id := cat.ID
		calcs[string(id)] = run(func(in models.UnitConvertRequest) (any, error) {
			return Convert(*in.Value, in.From, in.To, id)
		})
	}
	return calcs
}

func parseDate(field, s string) (time.Time, error) {
	t, err := formula.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", formula.ErrInvalidInput, field, err)
	}
	return t, nil
}

// Convert converts value and shapes the result for display.
func Convert(value float64, from, to string, category units.CategoryID) (models.ConvertResponse, error) {
	v, err := units.Convert(value, from, to, category)
	if err != nil {
		return models.ConvertResponse{}, err
	}
	return models.ConvertResponse{
		Value:     value,
		From:      from,
		To:        to,
		Category:  string(category),
		Result:    v,
		Formatted: units.Format(v),
	}, nil
}

// IsInputError reports whether err was caused by the caller's input rather
// than a failure while computing.
func IsInputError(err error) bool {
	return errors.Is(err, models.ErrValidation) ||
		errors.Is(err, formula.ErrInvalidInput) ||
		errors.Is(err, units.ErrUnknownCategory) ||
		errors.Is(err, units.ErrUnknownUnit) ||
		errors.Is(err, units.ErrNotFinite)
}
