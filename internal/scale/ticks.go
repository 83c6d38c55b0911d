package scale

import "math"

var (
	tickE10 = math.Sqrt(50)
	tickE5  = math.Sqrt(10)
	tickE2  = math.Sqrt(2)
)

// Ticks returns approximately count evenly spaced, round values in
// [start, stop]. Step sizes are powers of ten multiplied by 1, 2 or 5.
// Values are computed from integer multiples of the step to avoid
// accumulating floating point error.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, float64(count))
	if !(i2 >= i1) || math.IsInf(inc, 0) || inc == 0 {
		return nil
	}
	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := range ticks {
		k := i1 + float64(i)
		if reverse {
			k = i2 - float64(i)
		}
		if inc < 0 {
			ticks[i] = k / -inc
		} else {
			ticks[i] = k * inc
		}
	}
	return ticks
}

// tickSpec returns the first and last tick indices and the increment.
// A negative increment means the step is 1/-inc (sub-unit steps).
func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= tickE10:
		factor = 10
	case e >= tickE5:
		factor = 5
	case e >= tickE2:
		factor = 2
	}
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = Round(start * inc)
		i2 = Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = Round(start / inc)
		i2 = Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}
