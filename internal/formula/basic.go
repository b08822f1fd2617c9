package formula

import (
	"math/rand/v2"
	"sort"
)

// PercentageInput is the percentage calculator input.
type PercentageInput struct {
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// PercentageResult holds Percent% of Value and, when Percent is non-zero,
// the number Value is Percent% of.
type PercentageResult struct {
	OfValue          float64  `json:"of_value"`
	ValueIsPercentOf *float64 `json:"value_is_percent_of,omitempty"`
}

// Percentage computes Value*Percent/100.
func Percentage(in PercentageInput) (PercentageResult, error) {
	if !finite(in.Value, in.Percent) {
		return PercentageResult{}, invalid("value", "must be a number")
	}
	res := PercentageResult{OfValue: in.Value * in.Percent / 100}
	if !finite(res.OfValue) {
		return PercentageResult{}, errTooLarge
	}
	if in.Percent != 0 {
		whole := in.Value / in.Percent * 100
		if !finite(whole) {
			return PercentageResult{}, errTooLarge
		}
		res.ValueIsPercentOf = &whole
	}
	return res, nil
}

// DiscountInput is the discount calculator input.
type DiscountInput struct {
	Price   float64 `json:"price"`
	Percent float64 `json:"percent"`
}

// DiscountResult is the amount saved and the final price.
type DiscountResult struct {
	Discount float64 `json:"discount"`
	Final    float64 `json:"final"`
}

// Discount applies a percentage discount to a positive price.
func Discount(in DiscountInput) (DiscountResult, error) {
	if !finite(in.Price, in.Percent) || in.Price <= 0 {
		return DiscountResult{}, invalid("price", "must be greater than 0")
	}
	if in.Percent < 0 || in.Percent > 100 {
		return DiscountResult{}, invalid("percent", "must be between 0 and 100")
	}
	d := in.Price * in.Percent / 100
	return DiscountResult{Discount: d, Final: in.Price - d}, nil
}

// AverageResult is the summary of a list of numbers. Modes is empty when
// every value occurs once.
type AverageResult struct {
	Mean   float64   `json:"mean"`
	Median float64   `json:"median"`
	Modes  []float64 `json:"modes"`
	Sum    float64   `json:"sum"`
	Count  int       `json:"count"`
}

// Average computes mean, median and modes. At least two values are required.
func Average(values []float64) (AverageResult, error) {
	if len(values) < 2 {
		return AverageResult{}, invalid("values", "needs at least 2 numbers")
	}
	if !finite(values...) {
		return AverageResult{}, invalid("values", "must all be numbers")
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	freq := make(map[float64]int, len(values))
	maxFreq := 0
	for _, v := range values {
		sum += v
		freq[v]++
		if freq[v] > maxFreq {
			maxFreq = freq[v]
		}
	}

	n := len(sorted)
	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	modes := []float64{}
	if maxFreq > 1 {
		for i, v := range sorted {
			if freq[v] == maxFreq && (i == 0 || sorted[i-1] != v) {
				modes = append(modes, v)
			}
		}
	}
	if !finite(sum) {
		return AverageResult{}, errTooLarge
	}
	return AverageResult{
		Mean:   sum / float64(n),
		Median: median,
		Modes:  modes,
		Sum:    sum,
		Count:  n,
	}, nil
}

// Frac is a fraction with an integer numerator and denominator.
type Frac struct {
	Num int64 `json:"numerator"`
	Den int64 `json:"denominator"`
}

// FractionOp is one of add, subtract, multiply or divide.
type FractionOp string

const (
	FracAdd      FractionOp = "add"
	FracSubtract FractionOp = "subtract"
	FracMultiply FractionOp = "multiply"
	FracDivide   FractionOp = "divide"
)

// FractionInput is the fraction calculator input.
type FractionInput struct {
	A  Frac       `json:"a"`
	B  Frac       `json:"b"`
	Op FractionOp `json:"op"`
}

// Fraction applies Op to A and B and returns the simplified result with
// the sign carried by the numerator.
func Fraction(in FractionInput) (Frac, error) {
	a, b := in.A, in.B
	if a.Den == 0 || b.Den == 0 {
		return Frac{}, invalid("denominator", "must not be 0")
	}
	var res Frac
	switch in.Op {
	case FracAdd:
		res = Frac{Num: a.Num*b.Den + b.Num*a.Den, Den: a.Den * b.Den}
	case FracSubtract:
		res = Frac{Num: a.Num*b.Den - b.Num*a.Den, Den: a.Den * b.Den}
	case FracMultiply:
		res = Frac{Num: a.Num * b.Num, Den: a.Den * b.Den}
	case FracDivide:
		if b.Num == 0 {
			return Frac{}, invalid("b", "cannot divide by zero")
		}
		res = Frac{Num: a.Num * b.Den, Den: a.Den * b.Num}
	default:
		return Frac{}, invalid("op", "unknown operation %q", in.Op)
	}
	return Simplify(res), nil
}

// Simplify reduces f by the GCD and moves the sign to the numerator.
// A zero denominator is returned unchanged.
func Simplify(f Frac) Frac {
	if f.Den == 0 {
		return f
	}
	g := gcd(f.Num, f.Den)
	f.Num /= g
	f.Den /= g
	if f.Den < 0 {
		f.Num, f.Den = -f.Num, -f.Den
	}
	return f
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Arithmetic applies one of + - * / (× and ÷ are accepted) to a and b.
func Arithmetic(a float64, op string, b float64) (float64, error) {
	if !finite(a, b) {
		return 0, invalid("operand", "must be a number")
	}
	var v float64
	switch op {
	case "+":
		v = a + b
	case "-", "−":
		v = a - b
	case "*", "×", "x":
		v = a * b
	case "/", "÷":
		if b == 0 {
			return 0, invalid("operand", "cannot divide by zero")
		}
		v = a / b
	default:
		return 0, invalid("op", "unknown operator %q", op)
	}
	if !finite(v) {
		return 0, errTooLarge
	}
	return v, nil
}

// MaxRandomCount bounds how many numbers RandomInts generates per call.
const MaxRandomCount = 100

// RandomInput is the random number generator input. Bounds are inclusive.
type RandomInput struct {
	Min   int64 `json:"min"`
	Max   int64 `json:"max"`
	Count int   `json:"count"`
}

// RandomInts draws Count integers uniformly from [Min, Max]. A nil rng uses
// the package-level source.
func RandomInts(in RandomInput, rng *rand.Rand) ([]int64, error) {
	if in.Min > in.Max {
		return nil, invalid("min", "must be less than max")
	}
	if in.Count < 1 || in.Count > MaxRandomCount {
		return nil, invalid("count", "must be between 1 and %d", MaxRandomCount)
	}
	span := uint64(in.Max-in.Min) + 1
	out := make([]int64, in.Count)
	for i := range out {
		var r uint64
		switch {
		case span == 0: // full int64 range
			if rng != nil {
				r = rng.Uint64()
			} else {
				r = rand.Uint64()
			}
		case rng != nil:
			r = rng.Uint64N(span)
		default:
			r = rand.Uint64N(span)
		}
		out[i] = in.Min + int64(r)
	}
	return out, nil
}
