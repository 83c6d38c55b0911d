// Package zoom implements a pan/zoom transform and the gestures that update it.
//
// A Transform is a uniform scale k followed by a translation (x, y). It is
// applied to a base coordinate mapping without mutating it: RescaleX derives
// a new linear scale whose domain is the visible window of the base scale.
package zoom

import (
	"fmt"
	"math"

	"lifespanchart/internal/scale"
)

// Point is a position in chart pixels.
type Point struct {
	X, Y float64
}

// Extent is an axis-aligned rectangle given by its top-left and bottom-right corners.
type Extent [2]Point

// Rect returns the extent [[0,0],[w,h]].
func Rect(w, h float64) Extent {
	return Extent{{0, 0}, {w, h}}
}

// Transform is a scale factor K and a translation (X, Y).
type Transform struct {
	K, X, Y float64
}

// Identity is the transform that leaves every point in place.
var Identity = Transform{K: 1}

// Apply maps a point from base coordinates to transformed coordinates.
func (t Transform) Apply(p Point) Point {
	return Point{X: p.X*t.K + t.X, Y: p.Y*t.K + t.Y}
}

// Invert maps a transformed point back to base coordinates.
func (t Transform) Invert(p Point) Point {
	return Point{X: t.InvertX(p.X), Y: t.InvertY(p.Y)}
}

// InvertX inverts the horizontal component only.
func (t Transform) InvertX(x float64) float64 { return (x - t.X) / t.K }

// InvertY inverts the vertical component only.
func (t Transform) InvertY(y float64) float64 { return (y - t.Y) / t.K }

// Scale returns t with its scale factor multiplied by k.
func (t Transform) Scale(k float64) Transform {
	if k == 1 {
		return t
	}
	return Transform{K: t.K * k, X: t.X, Y: t.Y}
}

// Translate returns t translated by (x, y) in base units.
func (t Transform) Translate(x, y float64) Transform {
	if x == 0 && y == 0 {
		return t
	}
	return Transform{K: t.K, X: t.X + t.K*x, Y: t.Y + t.K*y}
}

// RescaleX returns a copy of s whose domain is the part of the original
// domain visible under t. s itself is not modified.
func (t Transform) RescaleX(s scale.Linear) scale.Linear {
	return s.WithDomain(s.Invert(t.InvertX(s.Range[0])), s.Invert(t.InvertX(s.Range[1])))
}

func (t Transform) String() string {
	return fmt.Sprintf("translate(%g,%g) scale(%g)", t.X, t.Y, t.K)
}

// Behavior holds the limits applied to every gesture.
type Behavior struct {
	// ScaleExtent bounds the scale factor.
	ScaleExtent [2]float64
	// Extent is the viewport the transform is applied to.
	Extent Extent
	// TranslateExtent bounds the visible window in base coordinates.
	TranslateExtent Extent
}

// NewBehavior returns a behavior for a w×h chart area whose viewport and
// translate extent both equal the chart area.
func NewBehavior(w, h, minK, maxK float64) Behavior {
	return Behavior{
		ScaleExtent:     [2]float64{minK, maxK},
		Extent:          Rect(w, h),
		TranslateExtent: Rect(w, h),
	}
}

func (b Behavior) clampK(k float64) float64 {
	return math.Max(b.ScaleExtent[0], math.Min(b.ScaleExtent[1], k))
}

// Constrain translates t so the viewport never shows anything outside the
// translate extent. When the viewport is larger than the extent the content
// is centred.
func (b Behavior) Constrain(t Transform) Transform {
	e, te := b.Extent, b.TranslateExtent
	dx0 := t.InvertX(e[0].X) - te[0].X
	dx1 := t.InvertX(e[1].X) - te[1].X
	dy0 := t.InvertY(e[0].Y) - te[0].Y
	dy1 := t.InvertY(e[1].Y) - te[1].Y
	return t.Translate(constrainAxis(dx0, dx1), constrainAxis(dy0, dy1))
}

func constrainAxis(d0, d1 float64) float64 {
	if d1 > d0 {
		return (d0 + d1) / 2
	}
	if v := math.Min(0, d0); v != 0 {
		return v
	}
	return math.Max(0, d1)
}

// Clamp limits t.K to the scale extent and then constrains the translation.
func (b Behavior) Clamp(t Transform) Transform {
	if k := b.clampK(t.K); k != t.K {
		t.K = k
	}
	return b.Constrain(t)
}

// ScaleTo sets the scale factor to k (clamped) keeping the point p fixed on screen.
func (b Behavior) ScaleTo(t Transform, k float64, p Point) Transform {
	p1 := t.Invert(p)
	k = b.clampK(k)
	scaled := t
	if k != t.K {
		scaled = Transform{K: k, X: t.X, Y: t.Y}
	}
	return b.Constrain(anchor(scaled, p, p1))
}

// ScaleBy multiplies the scale factor by factor keeping p fixed on screen.
func (b Behavior) ScaleBy(t Transform, factor float64, p Point) Transform {
	return b.ScaleTo(t, t.K*factor, p)
}

// TranslateBy pans by (dx, dy) base units.
func (b Behavior) TranslateBy(t Transform, dx, dy float64) Transform {
	return b.Constrain(t.Translate(dx, dy))
}

// Drag pans so the base point under from ends up under to.
func (b Behavior) Drag(t Transform, from, to Point) Transform {
	return b.Constrain(anchor(t, to, t.Invert(from)))
}

// WheelMode is the unit of a wheel delta.
type WheelMode int

const (
	WheelPixel WheelMode = iota
	WheelLine
	WheelPage
)

// Wheel applies a wheel gesture at p. Scrolling down (positive deltaY) zooms out.
func (b Behavior) Wheel(t Transform, deltaY float64, mode WheelMode, ctrl bool, p Point) Transform {
	m := 0.002
	switch mode {
	case WheelLine:
		m = 0.05
	case WheelPage:
		m = 1
	}
	if ctrl {
		m *= 10
	}
	k := b.clampK(t.K * math.Pow(2, -deltaY*m))
	if k == t.K {
		return t
	}
	return b.ScaleTo(t, k, p)
}

// DoubleClick zooms in by two at p, or out by two when shift is held.
func (b Behavior) DoubleClick(t Transform, p Point, shift bool) Transform {
	factor := 2.0
	if shift {
		factor = 0.5
	}
	return b.ScaleBy(t, factor, p)
}

// anchor returns t translated so that the base point p1 lands on screen point p0.
func anchor(t Transform, p0, p1 Point) Transform {
	x := p0.X - p1.X*t.K
	y := p0.Y - p1.Y*t.K
	if x == t.X && y == t.Y {
		return t
	}
	return Transform{K: t.K, X: x, Y: y}
}
