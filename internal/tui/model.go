// Package tui is a terminal viewer for a lifespan chart. It draws the
// controller's scene on a character grid and turns keys into the same pointer
// and zoom events the HTML page handles.
package tui

import (
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lifespanchart/internal/chart"
	"lifespanchart/internal/interact"
	"lifespanchart/internal/zoom"
)

// EventCounter receives the name of every handled event.
type EventCounter interface {
	Event(name string)
}

// Options configures the viewer.
type Options struct {
	Title  string
	Events EventCounter // optional
}

// Model is the bubbletea model of the viewer.
type Model struct {
	ctrl     *interact.Controller
	opts     Options
	keys     Keymap
	help     help.Model
	viewport viewport.Model
	ready    bool

	bands  []band
	gutter int
	cols   int

	row     int     // band under the pointer
	px      float64 // pointer x in chart coordinates
	inside  bool
	patches int // patches produced by the last event
}

// New returns a viewer driving c.
func New(c *interact.Controller, opts Options) *Model {
	bands := bandsOf(c.Scene())
	return &Model{
		ctrl:   c,
		opts:   opts,
		keys:   Keys,
		help:   help.New(),
		bands:  bands,
		gutter: gutterWidth(bands),
	}
}

// Run starts the viewer on the alternate screen and blocks until it quits.
func Run(c *interact.Controller, opts Options) error {
	p := tea.NewProgram(New(c, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	w, h := max(width-6, m.gutter+10), max(height-9, 1)
	m.help.Width = width
	if m.ready {
		m.viewport.Width = w
		m.viewport.Height = h
		m.cols = w - m.gutter
		m.refresh()
		m.scrollToRow()
		return
	}
	m.viewport = viewport.New(w, h)
	m.cols = w - m.gutter
	m.ready = true
	m.px = m.ctrl.Scene().Layout.Width / 2
	m.enter()
	m.apply("move", m.ctrl.PointerMove(m.px))
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.ready {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	w := m.ctrl.Scene().Layout.Width
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		m.movePointer(-m.step())
	case key.Matches(msg, m.keys.Right):
		m.movePointer(m.step())
	case key.Matches(msg, m.keys.Up):
		m.moveRow(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveRow(1)
	case key.Matches(msg, m.keys.Leave):
		m.inside = false
		m.apply("leave", m.ctrl.PointerLeave())
	case key.Matches(msg, m.keys.Click):
		p := m.point()
		m.enter()
		m.apply("click", m.ctrl.Click(p.X, p.Y, p.X, p.Y))
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoomed("zoom", m.ctrl.DoubleClick(m.point(), false))
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoomed("zoom", m.ctrl.DoubleClick(m.point(), true))
	case key.Matches(msg, m.keys.WheelIn):
		m.zoomed("wheel", m.ctrl.Wheel(-120, zoom.WheelPixel, false, m.point()))
	case key.Matches(msg, m.keys.WheelOut):
		m.zoomed("wheel", m.ctrl.Wheel(120, zoom.WheelPixel, false, m.point()))
	case key.Matches(msg, m.keys.PanLeft):
		m.pan(w / 10)
	case key.Matches(msg, m.keys.PanRight):
		m.pan(-w / 10)
	case key.Matches(msg, m.keys.Reset):
		m.zoomed("reset", m.ctrl.Reset())
	}
	m.refresh()
	return m, nil
}

// step is the chart width covered by one column.
func (m *Model) step() float64 {
	if m.cols <= 0 {
		return 1
	}
	return m.ctrl.Scene().Layout.Width / float64(m.cols)
}

func (m *Model) point() zoom.Point {
	p := zoom.Point{X: m.px}
	if m.row >= 0 && m.row < len(m.bands) {
		b := m.bands[m.row]
		p.Y = b.top + b.height/2
	}
	return p
}

func (m *Model) enter() {
	if m.inside {
		return
	}
	m.inside = true
	m.apply("enter", m.ctrl.PointerEnter())
}

func (m *Model) movePointer(dx float64) {
	w := m.ctrl.Scene().Layout.Width
	m.px = min(max(m.px+dx, 0), w)
	m.enter()
	m.apply("move", m.ctrl.PointerMove(m.px))
}

func (m *Model) moveRow(d int) {
	m.row = min(max(m.row+d, 0), len(m.bands)-1)
	m.scrollToRow()
}

// scrollToRow keeps the pointer's band inside the viewport.
func (m *Model) scrollToRow() {
	if m.row < 0 {
		return
	}
	if m.row < m.viewport.YOffset {
		m.viewport.SetYOffset(m.row)
	} else if m.row >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.row - m.viewport.Height + 1)
	}
}

// pan drags the chart dx pixels to the right.
func (m *Model) pan(dx float64) {
	from := m.point()
	to := zoom.Point{X: from.X + dx, Y: from.Y}
	m.zoomed("drag", m.ctrl.Drag(from, to))
}

// zoomed applies a zoom result and re-reads the pointer under the new
// mapping so the year label and hovered label follow.
func (m *Model) zoomed(name string, patches []chart.Patch) {
	m.apply(name, patches)
	if m.inside {
		n := m.patches
		m.apply("move", m.ctrl.PointerMove(m.px))
		m.patches += n
	}
}

func (m *Model) apply(name string, patches []chart.Patch) {
	m.patches = len(patches)
	log.Printf("tui: %s -> %d patches on %v", name, len(patches), chart.Targets(patches))
	if m.opts.Events != nil {
		m.opts.Events.Event(name)
	}
	m.refresh()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	g := grid{scene: m.ctrl.Scene(), cols: m.cols}
	rows := g.rows(m.bands)
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = gutter(m.bands[i].name, m.gutter, i == m.row) + render(row)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m *Model) headerView() string {
	s := m.ctrl.Scene()
	parts := []string{headerStyle.Render(m.opts.Title)}
	if s.Year.Visible {
		parts = append(parts, "year "+s.Year.Text)
	}
	if i, ok := m.ctrl.Hovered(); ok {
		parts = append(parts, "▸ "+m.ctrl.Records()[i].Name)
	}
	parts = append(parts, fmt.Sprintf("zoom ×%.2g", m.ctrl.Transform().K))
	if sel := m.ctrl.Selected(); len(sel) > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", len(sel)))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) axisView() string {
	g := grid{scene: m.ctrl.Scene(), cols: m.cols}
	marks, labels := g.axis()
	pad := strings.Repeat(" ", m.gutter)
	return pad + render(marks) + "\n" + pad + render(labels)
}

func (m *Model) footerView() string {
	var parts []string
	if t := m.ctrl.Scene().Tooltip; t.Visible {
		parts = append(parts, tipStyle.Render(plainTooltip(t.HTML)))
	}
	parts = append(parts, footerStyle.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}
	body := chartStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.axisView()))
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.footerView()))
}

// plainTooltip turns the tooltip markup into one line of text.
func plainTooltip(s string) string {
	return html.UnescapeString(strings.ReplaceAll(s, "<br/>", " · "))
}
