// Package scale maps data values onto pixel coordinates.
//
// Two mappings are provided:
//   - Linear: a continuous domain (e.g. calendar years) onto a pixel range
//   - Band: a set of categorical keys onto evenly spaced pixel intervals
//
// Both are plain values. Rescaling never mutates the receiver; it returns a
// copy so that the base mapping stays available for later rescales.
package scale

import (
	"math"
	"strconv"
)

// DefaultTickCount is the number of ticks requested for an axis when none is configured.
const DefaultTickCount = 10

// Linear is a continuous mapping from Domain onto Range.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
}

// NewLinear returns a linear scale from [d0, d1] onto [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Apply maps a domain value onto the range.
// A degenerate domain maps every value onto the middle of the range.
func (s Linear) Apply(v float64) float64 {
	return interpolate(s.Domain, s.Range, v)
}

// Invert maps a range value back onto the domain.
func (s Linear) Invert(px float64) float64 {
	return interpolate(s.Range, s.Domain, px)
}

// WithDomain returns a copy of s with a new domain and the same range.
func (s Linear) WithDomain(d0, d1 float64) Linear {
	s.Domain = [2]float64{d0, d1}
	return s
}

// Ticks returns roughly count human-friendly values spanning the domain.
func (s Linear) Ticks(count int) []float64 {
	return Ticks(s.Domain[0], s.Domain[1], count)
}

func interpolate(from, to [2]float64, v float64) float64 {
	span := from[1] - from[0]
	if span == 0 {
		return to[0] + 0.5*(to[1]-to[0])
	}
	t := (v - from[0]) / span
	return to[0] + t*(to[1]-to[0])
}

// Round rounds half-way values towards positive infinity, the way browsers
// round pointer positions. math.Round would send -2.5 to -3.
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// FormatInt renders v as a plain integer: rounded, no thousands separators,
// no decimals.
func FormatInt(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "NaN"
	}
	r := Round(v)
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', 0, 64)
}
