// Package chart turns records and scales into a declarative scene.
//
// A Scene lists every visual element of the lifespan chart with its current
// attributes. It holds no references to any presentation surface; writers
// (SVG, HTML, terminal) read it, and Diff reports what changed between two
// scenes so a surface can patch itself instead of redrawing.
package chart

import (
	"strconv"
)

// Margin is the space around the drawable area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Layout describes the drawable chart area and its margins.
type Layout struct {
	Width, Height float64
	Margin        Margin
}

// OuterWidth is the full canvas width including margins.
func (l Layout) OuterWidth() float64 { return l.Width + l.Margin.Left + l.Margin.Right }

// OuterHeight is the full canvas height including margins.
func (l Layout) OuterHeight() float64 { return l.Height + l.Margin.Top + l.Margin.Bottom }

// Style holds the fixed presentation attributes.
type Style struct {
	Background    string
	Normal        string  // bar fill for ordinary records
	Highlighted   string  // bar fill for flagged records
	Selected      string  // bar fill once clicked
	Text          string  // label and year text colour
	Guide         string  // guide line stroke
	GuideDash     string  // guide line dash pattern
	FontFamily    string
	FontSize      float64 // label and year text size in pixels
	LabelOffset   float64 // gap between a bar's end and its label
	YearOffset    float64 // vertical position of the year label (negative is above the chart)
	TickCount     int
	TooltipFadeMs int
}

// DefaultStyle returns the colours and offsets of the classic lifespan chart.
func DefaultStyle() Style {
	return Style{
		Background:    "#ffffff",
		Normal:        "blue",
		Highlighted:   "red",
		Selected:      "orange",
		Text:          "black",
		Guide:         "black",
		GuideDash:     "5,5",
		FontFamily:    "sans-serif",
		FontSize:      12,
		LabelOffset:   5,
		YearOffset:    -10,
		TickCount:     10,
		TooltipFadeMs: 200,
	}
}

// Tick is one axis graduation.
type Tick struct {
	X     float64
	Value float64
	Label string
}

// Axis is the horizontal axis drawn along the bottom of the chart.
type Axis struct {
	Y     float64
	Range [2]float64
	Ticks []Tick
}

// Bar is the rectangle drawn for one record.
type Bar struct {
	Index    int
	Name     string
	X, Y     float64
	Width    float64
	Height   float64
	Fill     string
	Selected bool
}

// Label is the name shown next to a bar while it is hovered.
type Label struct {
	Index   int
	Text    string
	X, Y    float64
	Visible bool
}

// GuideLine is the vertical line following the pointer.
type GuideLine struct {
	X       float64
	Y1, Y2  float64
	Visible bool
}

// YearLabel shows the domain value under the pointer.
type YearLabel struct {
	X, Y    float64
	Text    string
	Visible bool
}

// Tooltip is the detail box opened by clicking a bar.
type Tooltip struct {
	Visible   bool
	Opacity   float64
	HTML      string
	Left, Top float64 // page coordinates
	FadeMs    int
}

// Overlay is the invisible rectangle capturing pointer events over the chart.
type Overlay struct {
	Width, Height float64
}

// Scene is the full set of drawable elements.
type Scene struct {
	Layout  Layout
	Style   Style
	Axis    Axis
	Bars    []Bar
	Labels  []Label
	Guide   GuideLine
	Year    YearLabel
	Tooltip Tooltip
	Overlay Overlay
}

// Clone returns a deep copy of s.
func (s Scene) Clone() Scene {
	out := s
	out.Axis.Ticks = append([]Tick(nil), s.Axis.Ticks...)
	out.Bars = append([]Bar(nil), s.Bars...)
	out.Labels = append([]Label(nil), s.Labels...)
	return out
}

// BarID is the element id of bar i.
func BarID(i int) string { return "bar-" + strconv.Itoa(i) }

// LabelID is the element id of label i.
func LabelID(i int) string { return "label-" + strconv.Itoa(i) }

// Num formats a coordinate with at most three decimals.
func Num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	for len(s) > 1 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		return "0"
	}
	return s
}
