package scale

import "math"

// DefaultBandPadding is the fraction of each step left empty between and around bands.
const DefaultBandPadding = 0.1

// Band maps distinct string keys onto equally sized pixel bands.
// Keys keep their first-seen order; duplicates collapse onto one band.
type Band struct {
	keys    []string
	index   map[string]int
	r0, r1  float64
	padding float64

	step      float64
	start     float64
	bandwidth float64
}

// NewBand builds a band scale over keys spanning [r0, r1].
// padding is used for both the inner and the outer padding, with the bands
// centred in the range.
func NewBand(keys []string, r0, r1, padding float64) *Band {
	b := &Band{index: make(map[string]int, len(keys)), r0: r0, r1: r1, padding: padding}
	for _, k := range keys {
		if _, seen := b.index[k]; seen {
			continue
		}
		b.index[k] = len(b.keys)
		b.keys = append(b.keys, k)
	}
	b.rescale()
	return b
}

func (b *Band) rescale() {
	const align = 0.5
	n := float64(len(b.keys))
	b.step = (b.r1 - b.r0) / math.Max(1, n-b.padding+b.padding*2)
	b.start = b.r0 + (b.r1-b.r0-b.step*(n-b.padding))*align
	b.bandwidth = b.step * (1 - b.padding)
}

// Position returns the start of the band for key.
func (b *Band) Position(key string) (float64, bool) {
	i, ok := b.index[key]
	if !ok {
		return math.NaN(), false
	}
	return b.start + b.step*float64(i), true
}

// Bandwidth returns the height of a single band.
func (b *Band) Bandwidth() float64 { return b.bandwidth }

// Step returns the distance between the starts of adjacent bands.
func (b *Band) Step() float64 { return b.step }

// Len returns the number of distinct keys.
func (b *Band) Len() int { return len(b.keys) }
