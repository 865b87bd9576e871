// Package extmath provides named numeric constants: the 64-bit integer and
// float bounds and the usual transcendental values.
//
// Every constant is installed as a top-level identifier, e.g. PI or MAX_INT.
package extmath

import (
	"fmt"
	"math"
	"sync"

	"github.com/ardnew/exprx/lang"
	"github.com/ardnew/exprx/value"
)

var catalog = []lang.Constant{
	{Name: "MIN_INT", Value: int64(math.MinInt64), Help: "smallest 64-bit signed integer"},
	{Name: "MAX_INT", Value: int64(math.MaxInt64), Help: "largest 64-bit signed integer"},
	{Name: "MIN_FLOAT", Value: -math.MaxFloat64, Help: "smallest finite 64-bit float"},
	{Name: "MAX_FLOAT", Value: math.MaxFloat64, Help: "largest finite 64-bit float"},
	{Name: "MIN_POSITIVE", Value: math.SmallestNonzeroFloat64, Help: "smallest positive 64-bit float"},
	{Name: "NAN", Value: math.NaN(), Help: "not a number"},
	{Name: "INFINITY", Value: math.Inf(1), Help: "positive infinity"},
	{Name: "NEG_INFINITY", Value: math.Inf(-1), Help: "negative infinity"},
	{Name: "E", Value: math.E, Help: "Euler's number"},
	{Name: "PI", Value: math.Pi, Help: "π"},
	{Name: "TAU", Value: 2 * math.Pi, Help: "2π"},
	{Name: "SQRT_2", Value: math.Sqrt2, Help: "√2"},
	{Name: "FRAC_1_SQRT_2", Value: 1 / math.Sqrt2, Help: "1/√2"},
	{Name: "FRAC_2_SQRT_PI", Value: 2 / math.SqrtPi, Help: "2/√π"},
	{Name: "FRAC_1_PI", Value: 1 / math.Pi, Help: "1/π"},
	{Name: "FRAC_2_PI", Value: 2 / math.Pi, Help: "2/π"},
	{Name: "FRAC_PI_2", Value: math.Pi / 2, Help: "π/2"},
	{Name: "FRAC_PI_3", Value: math.Pi / 3, Help: "π/3"},
	{Name: "FRAC_PI_4", Value: math.Pi / 4, Help: "π/4"},
	{Name: "FRAC_PI_6", Value: math.Pi / 6, Help: "π/6"},
	{Name: "FRAC_PI_8", Value: math.Pi / 8, Help: "π/8"},
	{Name: "LN_2", Value: math.Ln2, Help: "ln(2)"},
	{Name: "LN_10", Value: math.Ln10, Help: "ln(10)"},
	{Name: "LOG2_E", Value: math.Log2E, Help: "log₂(e)"},
	{Name: "LOG2_10", Value: math.Log2(10), Help: "log₂(10)"},
	{Name: "LOG10_2", Value: math.Log10(2), Help: "log₁₀(2)"},
	{Name: "LOG10_E", Value: math.Log10E, Help: "log₁₀(e)"},
}

// constants validates the catalog once. A non-numeric entry is a programming
// error and panics.
var constants = sync.OnceValue(func() []lang.Constant {
	for _, c := range catalog {
		if !value.Of(c.Value).Numeric() {
			panic(fmt.Sprintf(
				"extmath: constant %s must be an integer or float, not %s",
				c.Name, value.Of(c.Value),
			))
		}
	}

	return catalog
})

func init() { constants() }

// Constants returns a copy of every math constant in catalog order.
func Constants() []lang.Constant {
	return append([]lang.Constant(nil), constants()...)
}
