package chart

import (
	"math"

	"lifespanchart/internal/record"
	"lifespanchart/internal/scale"
)

// Render builds the initial scene for sorted records.
//
// Bars span [x(lo), x(hi)] horizontally and fill their name's band
// vertically. Labels sit LabelOffset pixels right of the later end, centred
// on the band, and start hidden. The guide line, year label and tooltip
// start hidden as well.
func Render(records []record.Record, x scale.Linear, y *scale.Band, layout Layout, style Style) Scene {
	s := Scene{
		Layout:  layout,
		Style:   style,
		Bars:    make([]Bar, len(records)),
		Labels:  make([]Label, len(records)),
		Guide:   GuideLine{Y1: 0, Y2: layout.Height},
		Year:    YearLabel{Y: style.YearOffset},
		Tooltip: Tooltip{FadeMs: style.TooltipFadeMs},
		Overlay: Overlay{Width: layout.Width, Height: layout.Height},
	}
	bw := y.Bandwidth()
	for i, r := range records {
		top, _ := y.Position(r.Name)
		fill := style.Normal
		if r.Highlighted {
			fill = style.Highlighted
		}
		s.Bars[i] = Bar{Index: i, Name: r.Name, Y: top, Height: bw, Fill: fill}
		s.Labels[i] = Label{Index: i, Text: r.Name, Y: top + bw/2}
	}
	return Rescale(s, records, x)
}

// Rescale returns a copy of s with every horizontal attribute recomputed
// under x. Vertical attributes, fills and visibility are left untouched.
func Rescale(s Scene, records []record.Record, x scale.Linear) Scene {
	out := s.Clone()
	for i, r := range records {
		if i >= len(out.Bars) {
			break
		}
		out.Bars[i].X = x.Apply(r.Lo())
		out.Bars[i].Width = math.Abs(x.Apply(r.End) - x.Apply(r.Start))
		out.Labels[i].X = x.Apply(r.Hi()) + s.Style.LabelOffset
	}
	out.Axis = BuildAxis(x, s.Layout.Height, s.Style.TickCount)
	return out
}

// BuildAxis lays out a bottom axis for x at vertical offset y.
func BuildAxis(x scale.Linear, y float64, count int) Axis {
	if count <= 0 {
		count = scale.DefaultTickCount
	}
	values := x.Ticks(count)
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{X: x.Apply(v), Value: v, Label: scale.FormatInt(v)}
	}
	return Axis{Y: y, Range: x.Range, Ticks: ticks}
}
