// Package core holds the expense record and the helpers that turn user text
// into record fields.
//
// This file contains the permissive amount parser and the number formatting
// used wherever an amount is printed verbatim.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts form text into an amount the way a browser number
// field submission is read: leading whitespace is skipped and the longest
// leading decimal literal is used. Text with no numeric prefix yields NaN.
//
// Examples:
//
//	ParseAmount("12.34")   -> 12.34
//	ParseAmount(" 3.5kg")  -> 3.5
//	ParseAmount("1e3")     -> 1000
//	ParseAmount("-Infinity") -> -Inf
//	ParseAmount("abc")     -> NaN
func ParseAmount(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	if s == "" {
		return math.NaN()
	}

	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	end := i

	// Exponent only counts when at least one digit follows it.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// Out of range literals still carry a usable value (±Inf or 0).
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v
		}
		return math.NaN()
	}
	return v
}

// FormatAmount prints an amount the way it was entered: shortest
// representation, no forced decimals.
func FormatAmount(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	abs := math.Abs(v)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return formatExponent(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatExponent renders 1e+21 style output, without the zero padding Go
// puts on the exponent.
func formatExponent(v float64) string {
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	if exp == "" {
		exp = "0"
	}
	return mant + "e" + sign + exp
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
