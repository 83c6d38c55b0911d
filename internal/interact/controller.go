// Package interact holds the transient presentation state of a lifespan chart
// and updates it in response to pointer and zoom events.
//
// Every event method returns the patches that turn the previous scene into
// the new one. The Controller is not safe for concurrent use; callers deliver
// one event at a time.
package interact

import (
	"html"
	"sort"

	"lifespanchart/internal/chart"
	"lifespanchart/internal/record"
	"lifespanchart/internal/scale"
	"lifespanchart/internal/zoom"
)

// Options configures a Controller.
type Options struct {
	Behavior       zoom.Behavior
	Hover          HoverPolicy
	TooltipDX      float64 // tooltip offset from the click, page pixels
	TooltipDY      float64
	TooltipOpacity float64
	FadeMs         int
	StartLabel     string
	EndLabel       string
}

// DefaultOptions returns the classic behaviour for a w×h chart area.
func DefaultOptions(w, h float64) Options {
	return Options{
		Behavior:       zoom.NewBehavior(w, h, 1, 10),
		Hover:          FirstMatch,
		TooltipDX:      5,
		TooltipDY:      -28,
		TooltipOpacity: 0.9,
		FadeMs:         200,
		StartLabel:     "Start",
		EndLabel:       "End",
	}
}

// Controller is the state container for one rendered chart.
type Controller struct {
	opts      Options
	records   []record.Record
	base      scale.Linear
	current   scale.Linear
	transform zoom.Transform
	scene     chart.Scene
	hovered   int
	selected  map[int]bool
}

// New wraps a scene produced by chart.Render for records under the base
// horizontal scale.
func New(records []record.Record, base scale.Linear, scene chart.Scene, opts Options) *Controller {
	if opts.Hover == "" {
		opts.Hover = FirstMatch
	}
	return &Controller{
		opts:      opts,
		records:   records,
		base:      base,
		current:   base,
		transform: zoom.Identity,
		scene:     scene.Clone(),
		hovered:   -1,
		selected:  make(map[int]bool),
	}
}

// Options returns the options the controller was built with.
func (c *Controller) Options() Options { return c.opts }

// Base is the unzoomed horizontal mapping.
func (c *Controller) Base() scale.Linear { return c.base }

// Scene returns a copy of the current scene.
func (c *Controller) Scene() chart.Scene { return c.scene.Clone() }

// Current is the horizontal mapping in effect (the base scale rescaled by the
// zoom transform).
func (c *Controller) Current() scale.Linear { return c.current }

// Transform is the current zoom transform.
func (c *Controller) Transform() zoom.Transform { return c.transform }

// Records returns the records the controller was built with.
func (c *Controller) Records() []record.Record { return c.records }

// Hovered reports the record whose label is showing.
func (c *Controller) Hovered() (int, bool) { return c.hovered, c.hovered >= 0 }

// Selected lists selected record indexes in ascending order.
func (c *Controller) Selected() []int {
	out := make([]int, 0, len(c.selected))
	for i := range c.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (c *Controller) commit(next chart.Scene) []chart.Patch {
	patches := chart.Diff(c.scene, next)
	c.scene = next
	return patches
}

// PointerEnter shows the guide line and year label.
func (c *Controller) PointerEnter() []chart.Patch {
	next := c.scene.Clone()
	next.Guide.Visible = true
	next.Year.Visible = true
	return c.commit(next)
}

// PointerLeave hides the guide line, the year label and every record label.
func (c *Controller) PointerLeave() []chart.Patch {
	next := c.scene.Clone()
	next.Guide.Visible = false
	next.Year.Visible = false
	for i := range next.Labels {
		next.Labels[i].Visible = false
	}
	c.hovered = -1
	return c.commit(next)
}

// PointerMove tracks the pointer at chart pixel px: the guide line and year
// label follow it and only the label of the record picked by the hover
// policy is shown.
func (c *Controller) PointerMove(px float64) []chart.Patch {
	next := c.scene.Clone()
	next.Guide.X = px
	next.Year.X = px
	next.Year.Y = c.scene.Style.YearOffset
	next.Year.Text = scale.FormatInt(c.current.Invert(px))
	for i := range next.Labels {
		next.Labels[i].Visible = false
	}
	c.hovered = c.opts.Hover.pick(next.Bars, px)
	if c.hovered >= 0 {
		next.Labels[c.hovered].Visible = true
	}
	return c.commit(next)
}

// Click selects the bar under chart point (px, py) and opens its tooltip near
// the page point (pageX, pageY). Clicking empty space changes nothing.
func (c *Controller) Click(px, py, pageX, pageY float64) []chart.Patch {
	i := hit(c.scene.Bars, px, py)
	if i < 0 {
		return nil
	}
	return c.ClickBar(i, pageX, pageY)
}

// ClickBar selects bar i. Selection is permanent; clicking a selected bar
// again only moves the tooltip.
func (c *Controller) ClickBar(i int, pageX, pageY float64) []chart.Patch {
	if i < 0 || i >= len(c.records) {
		return nil
	}
	r := c.records[i]
	next := c.scene.Clone()
	c.selected[i] = true
	next.Bars[i].Selected = true
	next.Bars[i].Fill = c.scene.Style.Selected
	next.Tooltip = chart.Tooltip{
		Visible: true,
		Opacity: c.opts.TooltipOpacity,
		HTML:    c.TooltipHTML(r),
		Left:    pageX + c.opts.TooltipDX,
		Top:     pageY + c.opts.TooltipDY,
		FadeMs:  c.opts.FadeMs,
	}
	return c.commit(next)
}

// TooltipHTML is the tooltip body for r. The name is escaped; the values
// are plain numbers.
func (c *Controller) TooltipHTML(r record.Record) string {
	return html.EscapeString(r.Name) +
		"<br/>" + c.opts.StartLabel + ": " + record.FormatValue(r.Start) +
		"<br/>" + c.opts.EndLabel + ": " + record.FormatValue(r.End)
}

// Zoom applies transform t (clamped to the behavior's limits), redraws the
// axis and moves bars and labels horizontally. Later pointer moves invert
// the rescaled mapping.
func (c *Controller) Zoom(t zoom.Transform) []chart.Patch {
	t = c.opts.Behavior.Clamp(t)
	c.transform = t
	c.current = t.RescaleX(c.base)
	return c.commit(chart.Rescale(c.scene, c.records, c.current))
}

// Wheel zooms about chart point p.
func (c *Controller) Wheel(deltaY float64, mode zoom.WheelMode, ctrl bool, p zoom.Point) []chart.Patch {
	return c.Zoom(c.opts.Behavior.Wheel(c.transform, deltaY, mode, ctrl, p))
}

// Drag pans so the content under from moves to to.
func (c *Controller) Drag(from, to zoom.Point) []chart.Patch {
	return c.Zoom(c.opts.Behavior.Drag(c.transform, from, to))
}

// DoubleClick zooms in by two about p, or out with shift held.
func (c *Controller) DoubleClick(p zoom.Point, shift bool) []chart.Patch {
	return c.Zoom(c.opts.Behavior.DoubleClick(c.transform, p, shift))
}

// Reset returns to the identity transform.
func (c *Controller) Reset() []chart.Patch {
	return c.Zoom(zoom.Identity)
}
