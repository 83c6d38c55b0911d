// Package page renders the interactive HTML document: the chart SVG inline,
// a tooltip container, and a script that applies the pointer and zoom rules
// to the SVG in the browser.
package page

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/dustin/go-humanize"

	"lifespanchart/internal/interact"
	"lifespanchart/internal/svg"
)

// Options carries the page-level text.
type Options struct {
	Title   string
	Skipped int // rows dropped while loading, shown in the caption
}

type payloadRecord struct {
	Name    string  `json:"name"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Tooltip string  `json:"tooltip"`
}

type tooltipOptions struct {
	DX      float64 `json:"dx"`
	DY      float64 `json:"dy"`
	Opacity float64 `json:"opacity"`
	FadeMs  int     `json:"fadeMs"`
}

// payload is the DATA object read by chartScript.
type payload struct {
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Domain      [2]float64      `json:"domain"`
	ScaleExtent [2]float64      `json:"scaleExtent"`
	TickCount   int             `json:"tickCount"`
	LabelOffset float64         `json:"labelOffset"`
	YearOffset  float64         `json:"yearOffset"`
	Hover       string          `json:"hover"`
	Selected    string          `json:"selected"`
	Text        string          `json:"text"`
	Tooltip     tooltipOptions  `json:"tooltip"`
	Records     []payloadRecord `json:"records"`
}

var funcMap = template.FuncMap{
	"comma": func(n int) string { return humanize.Comma(int64(n)) },
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
}

var tmplPage = template.Must(template.New("page").Funcs(funcMap).Parse(pageTemplate))

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; font-family: sans-serif; }
.caption { margin: 4px 8px; font-size: 11px; color: #666; }
div.tooltip { position: absolute; text-align: left; padding: 4px 6px; font: 12px sans-serif; background: lightsteelblue; border: 0; border-radius: 8px; pointer-events: none; opacity: 0; }
#overlay { cursor: crosshair; }
</style>
</head>
<body>
{{.SVG}}
<div id="tooltip" class="tooltip"></div>
<p class="caption">{{comma .Count}} {{plural .Count "record" "records"}}{{if .Skipped}}, {{comma .Skipped}} skipped{{end}}. Scroll or double-click to zoom, drag to pan.</p>
<script>
var DATA = {{.JSONData}};
{{.Script}}
</script>
</body>
</html>
`

type pageData struct {
	Title    string
	Count    int
	Skipped  int
	SVG      template.HTML
	JSONData template.JS
	Script   template.JS
}

// Write renders the page for the chart held by c. The SVG is taken from the
// controller's current scene, so the page opens in whatever state c is in.
func Write(w io.Writer, c *interact.Controller, opts Options) error {
	jsonBytes, err := json.Marshal(buildPayload(c))
	if err != nil {
		return fmt.Errorf("encoding chart data: %w", err)
	}
	data := pageData{
		Title:    opts.Title,
		Count:    len(c.Records()),
		Skipped:  opts.Skipped,
		SVG:      template.HTML(svg.Generate(c.Scene(), svg.Options{Interactive: true})),
		JSONData: template.JS(jsonBytes),
		Script:   template.JS(chartScript),
	}
	if err := tmplPage.Execute(w, data); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

func buildPayload(c *interact.Controller) payload {
	s := c.Scene()
	o := c.Options()
	recs := c.Records()
	p := payload{
		Width:       s.Layout.Width,
		Height:      s.Layout.Height,
		Domain:      c.Base().Domain,
		ScaleExtent: o.Behavior.ScaleExtent,
		TickCount:   s.Style.TickCount,
		LabelOffset: s.Style.LabelOffset,
		YearOffset:  s.Style.YearOffset,
		Hover:       string(o.Hover),
		Selected:    s.Style.Selected,
		Text:        s.Style.Text,
		Tooltip: tooltipOptions{
			DX:      o.TooltipDX,
			DY:      o.TooltipDY,
			Opacity: o.TooltipOpacity,
			FadeMs:  o.FadeMs,
		},
		Records: make([]payloadRecord, len(recs)),
	}
	for i, r := range recs {
		p.Records[i] = payloadRecord{Name: r.Name, Start: r.Start, End: r.End, Tooltip: c.TooltipHTML(r)}
	}
	return p
}
