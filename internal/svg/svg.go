// Package svg writes a chart scene as SVG markup.
//
// Two flavours are produced from the same scene:
//   - Static: a standalone document with every record label shown and a
//     <title> on each bar, suitable for viewing without a script.
//   - Interactive: markup meant to be embedded in an HTML page. Every element
//     the page script touches carries an id (bar-N, label-N, guide, year,
//     axis, overlay) and starts with the opacity recorded in the scene.
package svg

import (
	"fmt"
	"strings"

	"lifespanchart/internal/chart"
)

// Options selects the flavour of markup.
type Options struct {
	// Interactive emits the guide line, year label and capture overlay and
	// keeps labels at the opacity held by the scene.
	Interactive bool
	// XMLHeader prefixes the output with an XML declaration.
	XMLHeader bool
}

// Generate returns the SVG document for s.
func Generate(s chart.Scene, opts Options) string {
	l, st := s.Layout, s.Style
	n := chart.Num

	var svg strings.Builder
	if opts.XMLHeader {
		svg.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	}
	svg.WriteString(fmt.Sprintf(`<svg id="chart" width="%s" height="%s" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.label { font-family: %s; font-size: %spx; fill: %s; }
.year-text { font-family: %s; font-size: %spx; fill: %s; }
.tick text { font-family: %s; font-size: 10px; fill: %s; }
</style>
</defs>
`, n(l.OuterWidth()), n(l.OuterHeight()), EscapeXML(st.Background),
		EscapeXML(st.FontFamily), n(st.FontSize), EscapeXML(st.Text),
		EscapeXML(st.FontFamily), n(st.FontSize), EscapeXML(st.Text),
		EscapeXML(st.FontFamily), EscapeXML(st.Text)))

	svg.WriteString(fmt.Sprintf(`<g transform="translate(%s,%s)">`+"\n", n(l.Margin.Left), n(l.Margin.Top)))
	writeAxis(&svg, s.Axis, st)
	writeBars(&svg, s.Bars, !opts.Interactive)
	writeLabels(&svg, s.Labels, opts.Interactive)

	if opts.Interactive {
		g := s.Guide
		svg.WriteString(fmt.Sprintf(`<line id="guide" class="mouse-line" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1" stroke-dasharray="%s" opacity="%s" pointer-events="none"/>`+"\n",
			n(g.X), n(g.Y1), n(g.X), n(g.Y2), EscapeXML(st.Guide), EscapeXML(st.GuideDash), opacity(g.Visible)))
		y := s.Year
		svg.WriteString(fmt.Sprintf(`<text id="year" class="year-text" x="%s" y="%s" text-anchor="middle" opacity="%s" pointer-events="none">%s</text>`+"\n",
			n(y.X), n(y.Y), opacity(y.Visible), EscapeXML(y.Text)))
		svg.WriteString(fmt.Sprintf(`<rect id="overlay" width="%s" height="%s" fill="none" pointer-events="all"/>`+"\n",
			n(s.Overlay.Width), n(s.Overlay.Height)))
	}

	svg.WriteString("</g>\n</svg>\n")
	return svg.String()
}

// writeAxis draws a bottom axis: a domain path with outer ticks and one
// graduation per tick.
func writeAxis(svg *strings.Builder, a chart.Axis, st chart.Style) {
	n := chart.Num
	svg.WriteString(fmt.Sprintf(`<g id="axis" class="axis" transform="translate(0,%s)">`+"\n", n(a.Y)))
	svg.WriteString(fmt.Sprintf(`<path class="domain" stroke="%s" fill="none" d="M%s,6V0H%sV6"/>`+"\n",
		EscapeXML(st.Text), n(a.Range[0]), n(a.Range[1])))
	for _, t := range a.Ticks {
		svg.WriteString(fmt.Sprintf(`<g class="tick" transform="translate(%s,0)"><line y2="6" stroke="%s"/><text y="9" dy="0.71em" text-anchor="middle">%s</text></g>`+"\n",
			n(t.X), EscapeXML(st.Text), EscapeXML(t.Label)))
	}
	svg.WriteString("</g>\n")
}

func writeBars(svg *strings.Builder, bars []chart.Bar, titles bool) {
	n := chart.Num
	svg.WriteString(`<g id="bars">` + "\n")
	for i, b := range bars {
		attrs := fmt.Sprintf(`id="%s" class="bar" data-index="%d" x="%s" y="%s" width="%s" height="%s" fill="%s"`,
			chart.BarID(i), i, n(b.X), n(b.Y), n(b.Width), n(b.Height), EscapeXML(b.Fill))
		if titles {
			svg.WriteString(fmt.Sprintf("<rect %s><title>%s</title></rect>\n", attrs, EscapeXML(b.Name)))
			continue
		}
		svg.WriteString(fmt.Sprintf("<rect %s/>\n", attrs))
	}
	svg.WriteString("</g>\n")
}

func writeLabels(svg *strings.Builder, labels []chart.Label, interactive bool) {
	n := chart.Num
	svg.WriteString(`<g id="labels">` + "\n")
	for i, l := range labels {
		op := "1"
		if interactive {
			op = opacity(l.Visible)
		}
		svg.WriteString(fmt.Sprintf(`<text id="%s" class="label" x="%s" y="%s" text-anchor="start" dominant-baseline="middle" opacity="%s" pointer-events="none">%s</text>`+"\n",
			chart.LabelID(i), n(l.X), n(l.Y), op, EscapeXML(l.Text)))
	}
	svg.WriteString("</g>\n")
}

func opacity(visible bool) string {
	if visible {
		return "1"
	}
	return "0"
}

// EscapeXML escapes the five XML special characters (&, <, >, ", ') so that
// s can be used both as text content and inside an attribute value.
func EscapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
