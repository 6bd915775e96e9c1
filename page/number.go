package page

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const secondsPerDay = 86400

// Number is a sample value along with the number of decimals it is printed with
type Number struct {
	Value    float64
	Decimals int
}

// Int returns an integer Number
func Int(v int) Number {
	return Number{Value: float64(v)}
}

// Bool returns 1 for true and 0 for false
func Bool(b bool) Number {
	if b {
		return Int(1)
	}
	return Int(0)
}

// rPlain matches the digits[.,]digits shape the status page uses
var rPlain = regexp.MustCompile(`^[-+]?\d+(?:[.,](\d+))?$`)

// ParseNumber reads a decimal number, accepting both ',' and '.' as separator.
// Plain numbers keep their written decimals. When both separators appear, the
// last one is the decimal separator and the other groups thousands. Other
// forms, like exponents, print in their shortest form. Anything that does not
// parse yields 0.
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if m := rPlain.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			return Number{}
		}
		return Number{Value: v, Decimals: len(m[1])}
	}

	comma, dot := strings.LastIndexByte(s, ','), strings.LastIndexByte(s, '.')
	if comma >= 0 && dot >= 0 {
		if comma > dot {
			return ParseNumber(strings.ReplaceAll(s, ".", ""))
		}
		return ParseNumber(strings.ReplaceAll(s, ",", ""))
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{Value: v, Decimals: -1}
}

// Scale multiplies the value by f, keeping its precision
func (n Number) Scale(f float64) Number {
	return Number{Value: n.Value * f, Decimals: n.Decimals}
}

// Neg returns the opposite value. Zero stays 0, not -0.
func (n Number) Neg() Number {
	if n.Value == 0 {
		return Number{Decimals: n.Decimals}
	}
	return Number{Value: -n.Value, Decimals: n.Decimals}
}

func (n Number) String() string {
	return strconv.FormatFloat(n.Value, 'f', n.Decimals, 64)
}

// UnitPattern compiles the pattern matching an integer followed by unit
func UnitPattern(unit string) *regexp.Regexp {
	return regexp.MustCompile(`(\d+)\s*` + unit + `\b`)
}

// UnitCount returns the integer captured by a UnitPattern in text,
// or 0 when the unit does not appear.
func UnitCount(text string, r *regexp.Regexp) int {
	m := r.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return v
}

// Days combines a duration into a number of days rounded to 2 decimals
func Days(days, hours, minutes, seconds int) Number {
	total := days*secondsPerDay + hours*3600 + minutes*60 + seconds
	v := float64(total) / secondsPerDay
	return Number{Value: math.Round(v*100) / 100, Decimals: 2}
}
