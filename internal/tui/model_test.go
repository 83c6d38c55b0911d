package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"lifespanchart/internal/chart"
	"lifespanchart/internal/interact"
	"lifespanchart/internal/record"
	"lifespanchart/internal/scale"
	"lifespanchart/internal/zoom"
)

type eventLog []string

func (e *eventLog) Event(name string) { *e = append(*e, name) }

func testController() *interact.Controller {
	recs := []record.Record{
		{Name: "A", Start: 100, End: 200},
		{Name: "B", Start: 150, End: 160, Highlighted: true},
		{Name: "Cc", Start: 600, End: 900},
	}
	layout := chart.Layout{Width: 1000, Height: 300, Margin: chart.Margin{Top: 20, Right: 20, Bottom: 30, Left: 50}}
	x := scale.NewLinear(0, 1000, 0, layout.Width)
	y := scale.NewBand(record.Names(recs), 0, layout.Height, scale.DefaultBandPadding)
	s := chart.Render(recs, x, y, layout, chart.DefaultStyle())
	return interact.New(recs, x, s, interact.DefaultOptions(layout.Width, layout.Height))
}

func tallController(n int) *interact.Controller {
	recs := make([]record.Record, n)
	for i := range recs {
		recs[i] = record.Record{Name: fmt.Sprintf("r%02d", i), Start: float64(i * 10), End: float64(i*10 + 50)}
	}
	layout := chart.Layout{Width: 1000, Height: 600}
	x := scale.NewLinear(0, 1000, 0, layout.Width)
	y := scale.NewBand(record.Names(recs), 0, layout.Height, scale.DefaultBandPadding)
	s := chart.Render(recs, x, y, layout, chart.DefaultStyle())
	return interact.New(recs, x, s, interact.DefaultOptions(layout.Width, layout.Height))
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func ready(t *testing.T, events EventCounter) (*Model, *interact.Controller) {
	t.Helper()
	c := testController()
	m := New(c, Options{Title: "Lifespans", Events: events})
	m.Update(tea.WindowSizeMsg{Width: 86, Height: 30})
	if !m.ready || m.cols != 76 {
		t.Fatalf("ready=%v cols=%d", m.ready, m.cols)
	}
	return m, c
}

func TestResizeEntersPointer(t *testing.T) {
	var events eventLog
	m, c := ready(t, &events)
	s := c.Scene()
	if !s.Guide.Visible || s.Guide.X != 500 || s.Year.Text != "500" {
		t.Fatalf("guide=%+v year=%+v", s.Guide, s.Year)
	}
	if _, ok := c.Hovered(); ok {
		t.Fatalf("nothing spans the middle of the chart")
	}
	if strings.Join(events, ",") != "enter,move" {
		t.Fatalf("events = %v", events)
	}
	if m.View() == "loading..." {
		t.Fatalf("view not ready")
	}
}

func TestPointerAndClick(t *testing.T) {
	m, c := ready(t, nil)
	m.px = 145
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if i, ok := c.Hovered(); !ok || i != 0 {
		t.Fatalf("hovered = %d, %v", i, ok)
	}
	if !strings.Contains(m.headerView(), "▸ A") {
		t.Fatalf("header lacks hovered record: %q", m.headerView())
	}
	if want := 145 + 1000.0/76; m.px != want {
		t.Fatalf("px = %v, want %v", m.px, want)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(runes("j"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := c.Selected(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("selected = %v", got)
	}
	if !strings.Contains(m.footerView(), "B · Start: 150 · End: 160") {
		t.Fatalf("footer lacks tooltip: %q", m.footerView())
	}

	// the last band has no bar under the pointer
	m.Update(runes("j"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(c.Selected()) != 2 || m.patches != 0 {
		t.Fatalf("miss changed selection: %v, %d patches", c.Selected(), m.patches)
	}
	m.Update(runes("j"))
	if m.row != 2 {
		t.Fatalf("row = %d", m.row)
	}
}

func TestZoomKeys(t *testing.T) {
	m, c := ready(t, nil)
	m.Update(runes("+"))
	if k := c.Transform().K; k != 2 {
		t.Fatalf("k = %v", k)
	}
	x0 := c.Transform().X
	m.Update(runes("H"))
	if x := c.Transform().X; x != x0+100 {
		t.Fatalf("pan x = %v, want %v", x, x0+100)
	}
	if c.Scene().Year.Text == "500" {
		t.Fatalf("year label not re-read after zoom")
	}
	m.Update(runes("-"))
	m.Update(runes("-"))
	if c.Transform().K != 1 {
		t.Fatalf("zoom out below 1: %v", c.Transform())
	}
	m.Update(runes("]"))
	if c.Transform().K <= 1 {
		t.Fatalf("wheel in did not zoom")
	}
	m.Update(runes("0"))
	if c.Transform() != zoom.Identity {
		t.Fatalf("reset = %v", c.Transform())
	}
}

func TestLeaveAndQuit(t *testing.T) {
	m, c := ready(t, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if s := c.Scene(); s.Guide.Visible || s.Year.Visible {
		t.Fatalf("leave kept pointer chrome visible")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if !c.Scene().Guide.Visible {
		t.Fatalf("moving again should re-enter")
	}

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit command = %T", cmd())
	}
}

func TestView(t *testing.T) {
	m, _ := ready(t, nil)
	view := m.View()
	for _, want := range []string{"Lifespans", "year 500", "zoom ×1", "Cc", "900"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestGridRows(t *testing.T) {
	c := testController()
	s := c.Scene()
	s.Labels[2].Visible = true
	s.Guide = chart.GuideLine{X: 500, Y2: 300, Visible: true}
	g := grid{scene: s, cols: 20}
	bands := bandsOf(s)
	if len(bands) != 3 || bands[2].name != "Cc" {
		t.Fatalf("bands = %+v", bands)
	}
	rows := g.rows(bands)
	if got := plain(rows[0]); got != "  ███     │"+strings.Repeat(" ", 9) {
		t.Fatalf("row A = %q", got)
	}
	if got := plain(rows[2]); got != "          │ ██████Cc" {
		t.Fatalf("row Cc = %q", got)
	}
	marks, labels := g.axis()
	if !strings.HasPrefix(plain(marks), "┬─┬─") {
		t.Fatalf("axis = %q", plain(marks))
	}
	if !strings.HasPrefix(plain(labels), "0") {
		t.Fatalf("axis labels = %q", plain(labels))
	}
}

func TestResizeKeepsScrolledRowVisible(t *testing.T) {
	m := New(tallController(30), Options{Title: "Tall"})
	m.Update(tea.WindowSizeMsg{Width: 86, Height: 18})
	for i := 0; i < 20; i++ {
		m.Update(runes("j"))
	}
	if m.row != 20 || m.viewport.YOffset != 12 {
		t.Fatalf("row=%d offset=%d", m.row, m.viewport.YOffset)
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 18})
	if m.cols != 94-m.gutter {
		t.Fatalf("cols = %d after resize", m.cols)
	}
	if off := m.viewport.YOffset; m.row < off || m.row >= off+m.viewport.Height {
		t.Fatalf("row %d outside viewport [%d, %d)", m.row, off, off+m.viewport.Height)
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 14})
	if off := m.viewport.YOffset; m.row < off || m.row >= off+m.viewport.Height {
		t.Fatalf("row %d outside shrunk viewport [%d, %d)", m.row, off, off+m.viewport.Height)
	}
}
