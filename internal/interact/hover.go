package interact

import (
	"fmt"
	"strings"

	"lifespanchart/internal/chart"
)

// HoverPolicy decides which record's label is shown when several spans
// contain the pointer.
type HoverPolicy string

const (
	// FirstMatch picks the first record in sorted order, whatever its band.
	FirstMatch HoverPolicy = "first-match"
	// Topmost picks the record drawn highest on screen; ties go to record order.
	Topmost HoverPolicy = "topmost"
)

// ParseHoverPolicy accepts the names used in configuration files. An empty
// string means FirstMatch.
func ParseHoverPolicy(s string) (HoverPolicy, error) {
	switch HoverPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", FirstMatch:
		return FirstMatch, nil
	case Topmost:
		return Topmost, nil
	}
	return "", fmt.Errorf("unknown hover policy %q (want %s or %s)", s, FirstMatch, Topmost)
}

// pick returns the index of the bar whose horizontal span contains px, or -1.
func (p HoverPolicy) pick(bars []chart.Bar, px float64) int {
	found := -1
	for i, b := range bars {
		if px < b.X || px > b.X+b.Width {
			continue
		}
		if p != Topmost {
			return i
		}
		if found < 0 || b.Y < bars[found].Y {
			found = i
		}
	}
	return found
}

// hit returns the first bar containing the point (px, py), or -1.
func hit(bars []chart.Bar, px, py float64) int {
	for i, b := range bars {
		if px >= b.X && px <= b.X+b.Width && py >= b.Y && py <= b.Y+b.Height {
			return i
		}
	}
	return -1
}
