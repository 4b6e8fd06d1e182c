package report

import (
	"math"

	"github.com/shopspring/decimal"
)

// Total is a sum of amounts rounded to two decimal places. A non-finite
// amount anywhere in the input makes the whole total non-finite.
type Total struct {
	value   decimal.Decimal
	special float64 // NaN or ±Inf when the sum is not finite
	finite  bool
}

func finiteTotal(d decimal.Decimal) Total {
	return Total{value: d.Round(2), finite: true}
}

// IsFinite reports whether the total is an ordinary number.
func (t Total) IsFinite() bool { return t.finite }

// IsNaN reports whether a NaN amount contaminated the total.
func (t Total) IsNaN() bool { return !t.finite && math.IsNaN(t.special) }

// Decimal returns the rounded value; zero when the total is not finite.
func (t Total) Decimal() decimal.Decimal {
	if !t.finite {
		return decimal.Zero
	}
	return t.value
}

func (t Total) Float64() float64 {
	if !t.finite {
		return t.special
	}
	f, _ := t.value.Float64()
	return f
}

// String renders two fixed decimals ("0.00", "15.56"), or NaN, Infinity
// and -Infinity.
func (t Total) String() string {
	if t.finite {
		return t.value.StringFixed(2)
	}
	switch {
	case math.IsNaN(t.special):
		return "NaN"
	case t.special > 0:
		return "Infinity"
	default:
		return "-Infinity"
	}
}
