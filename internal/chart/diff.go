package chart

import "strings"

// Element targets used in patches that do not belong to a record.
const (
	TargetAxis    = "axis"
	TargetGuide   = "guide"
	TargetYear    = "year"
	TargetTooltip = "tooltip"
)

// Patch sets one attribute of one element.
type Patch struct {
	Target string
	Attr   string
	Value  string
}

func (p Patch) String() string {
	return p.Target + "." + p.Attr + "=" + p.Value
}

// Diff lists the attribute changes that turn prev into next. Both scenes
// must come from the same Render call (same records, same order).
func Diff(prev, next Scene) []Patch {
	var d differ

	if !sameTicks(prev.Axis.Ticks, next.Axis.Ticks) {
		labels := make([]string, len(next.Axis.Ticks))
		for i, t := range next.Axis.Ticks {
			labels[i] = t.Label + "@" + Num(t.X)
		}
		d.add(TargetAxis, "ticks", strings.Join(labels, " "))
	}

	for i := range next.Bars {
		if i >= len(prev.Bars) {
			break
		}
		a, b := prev.Bars[i], next.Bars[i]
		id := BarID(i)
		d.num(id, "x", a.X, b.X)
		d.num(id, "width", a.Width, b.Width)
		d.num(id, "y", a.Y, b.Y)
		d.num(id, "height", a.Height, b.Height)
		d.str(id, "fill", a.Fill, b.Fill)
	}
	for i := range next.Labels {
		if i >= len(prev.Labels) {
			break
		}
		a, b := prev.Labels[i], next.Labels[i]
		id := LabelID(i)
		d.num(id, "x", a.X, b.X)
		d.num(id, "y", a.Y, b.Y)
		d.visible(id, a.Visible, b.Visible)
	}

	d.num(TargetGuide, "x1", prev.Guide.X, next.Guide.X)
	d.num(TargetGuide, "x2", prev.Guide.X, next.Guide.X)
	d.visible(TargetGuide, prev.Guide.Visible, next.Guide.Visible)

	d.num(TargetYear, "x", prev.Year.X, next.Year.X)
	d.num(TargetYear, "y", prev.Year.Y, next.Year.Y)
	d.str(TargetYear, "text", prev.Year.Text, next.Year.Text)
	d.visible(TargetYear, prev.Year.Visible, next.Year.Visible)

	d.str(TargetTooltip, "html", prev.Tooltip.HTML, next.Tooltip.HTML)
	d.num(TargetTooltip, "left", prev.Tooltip.Left, next.Tooltip.Left)
	d.num(TargetTooltip, "top", prev.Tooltip.Top, next.Tooltip.Top)
	d.num(TargetTooltip, "opacity", prev.Tooltip.Opacity, next.Tooltip.Opacity)

	return d.patches
}

type differ struct {
	patches []Patch
}

func (d *differ) add(target, attr, value string) {
	d.patches = append(d.patches, Patch{Target: target, Attr: attr, Value: value})
}

func (d *differ) num(target, attr string, a, b float64) {
	if sa, sb := Num(a), Num(b); sa != sb {
		d.add(target, attr, sb)
	}
}

func (d *differ) str(target, attr, a, b string) {
	if a != b {
		d.add(target, attr, b)
	}
}

func (d *differ) visible(target string, a, b bool) {
	if a != b {
		d.add(target, "opacity", opacity(b))
	}
}

func opacity(visible bool) string {
	if visible {
		return "1"
	}
	return "0"
}

func sameTicks(a, b []Tick) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Label != b[i].Label || Num(a[i].X) != Num(b[i].X) {
			return false
		}
	}
	return true
}

// Targets returns the distinct targets touched by patches, in first-seen order.
func Targets(patches []Patch) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range patches {
		if !seen[p.Target] {
			seen[p.Target] = true
			out = append(out, p.Target)
		}
	}
	return out
}
