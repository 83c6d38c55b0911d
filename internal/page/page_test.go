package page

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"lifespanchart/internal/chart"
	"lifespanchart/internal/interact"
	"lifespanchart/internal/record"
	"lifespanchart/internal/scale"
)

func testController() *interact.Controller {
	recs := []record.Record{
		{Name: "A", Start: 100, End: 200},
		{Name: "</script><b>", Start: 150, End: 160, Highlighted: true},
	}
	layout := chart.Layout{Width: 1000, Height: 400, Margin: chart.Margin{Top: 20, Right: 20, Bottom: 30, Left: 50}}
	x := scale.NewLinear(0, 13500, 0, layout.Width)
	y := scale.NewBand(record.Names(recs), 0, layout.Height, scale.DefaultBandPadding)
	s := chart.Render(recs, x, y, layout, chart.DefaultStyle())
	return interact.New(recs, x, s, interact.DefaultOptions(layout.Width, layout.Height))
}

func TestWritePage(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testController(), Options{Title: "Lives & times", Skipped: 1}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	doc := buf.String()
	for _, want := range []string{
		"<title>Lives &amp; times</title>",
		`<svg id="chart"`,
		`<rect id="overlay"`,
		`<div id="tooltip" class="tooltip"></div>`,
		"2 records, 1 skipped.",
		"var DATA = {",
		`overlay.addEventListener("mousemove"`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("page lacks %q", want)
		}
	}
	// the record name must never close the script block early
	if strings.Count(doc, "</script>") != 1 {
		t.Fatalf("unexpected </script> in page")
	}
}

func TestPayload(t *testing.T) {
	p := buildPayload(testController())
	if p.Width != 1000 || p.Height != 400 || p.Domain != [2]float64{0, 13500} {
		t.Fatalf("payload geometry = %+v", p)
	}
	if p.ScaleExtent != [2]float64{1, 10} || p.Hover != "first-match" || p.Selected != "orange" {
		t.Fatalf("payload options = %+v", p)
	}
	if p.Tooltip.DX != 5 || p.Tooltip.DY != -28 || p.Tooltip.Opacity != 0.9 || p.Tooltip.FadeMs != 200 {
		t.Fatalf("tooltip options = %+v", p.Tooltip)
	}
	if got := p.Records[1].Tooltip; got != "&lt;/script&gt;&lt;b&gt;<br/>Start: 150<br/>End: 160" {
		t.Fatalf("tooltip = %q", got)
	}

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	var back map[string]any
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"width", "domain", "scaleExtent", "tickCount", "labelOffset", "yearOffset", "records"} {
		if _, ok := back[key]; !ok {
			t.Fatalf("payload JSON lacks %q", key)
		}
	}
}

func TestScriptIsTemplateSafe(t *testing.T) {
	for _, bad := range []string{"{{", "`", "</script"} {
		if strings.Contains(chartScript, bad) {
			t.Fatalf("chart script contains %q", bad)
		}
	}
}
