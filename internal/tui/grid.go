package tui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lifespanchart/internal/chart"
)

const maxGutter = 16

// band is one name row of the chart, in screen order.
type band struct {
	top, height float64
	name        string
}

// bandsOf lists the distinct bands of s from top to bottom.
func bandsOf(s chart.Scene) []band {
	seen := make(map[float64]bool)
	var out []band
	for _, b := range s.Bars {
		if seen[b.Y] {
			continue
		}
		seen[b.Y] = true
		out = append(out, band{top: b.Y, height: b.Height, name: b.Name})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].top < out[j].top })
	return out
}

func gutterWidth(bands []band) int {
	w := 0
	for _, b := range bands {
		if n := len([]rune(b.name)); n > w {
			w = n
		}
	}
	if w > maxGutter {
		w = maxGutter
	}
	return w + 2 // row marker and a space
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellBar
	cellLabel
	cellGuide
	cellAxis
)

type cell struct {
	ch   rune
	kind cellKind
	fill string
}

// grid is the chart area drawn on a character matrix.
type grid struct {
	scene chart.Scene
	cols  int
}

// col maps a chart x coordinate to a column; it may fall outside the grid.
func (g grid) col(x float64) int {
	if g.scene.Layout.Width <= 0 {
		return 0
	}
	return int(math.Floor(x / g.scene.Layout.Width * float64(g.cols)))
}

func (g grid) blank() []cell {
	row := make([]cell, g.cols)
	for i := range row {
		row[i] = cell{ch: ' '}
	}
	return row
}

// rows draws one line per band: the bars sharing it, any visible labels and
// the guide line.
func (g grid) rows(bands []band) [][]cell {
	index := make(map[float64]int, len(bands))
	out := make([][]cell, len(bands))
	for i, b := range bands {
		index[b.top] = i
		out[i] = g.blank()
	}
	for _, b := range g.scene.Bars {
		row := out[index[b.Y]]
		c0, c1 := g.col(b.X), g.col(b.X+b.Width)
		if c1 < 0 || c0 >= g.cols {
			continue
		}
		for c := max(c0, 0); c <= min(c1, g.cols-1); c++ {
			row[c] = cell{ch: '█', kind: cellBar, fill: b.Fill}
		}
	}
	for i, l := range g.scene.Labels {
		if !l.Visible || i >= len(g.scene.Bars) {
			continue
		}
		row := out[index[g.scene.Bars[i].Y]]
		c := g.col(l.X)
		for _, r := range l.Text {
			if c >= g.cols {
				break
			}
			if c >= 0 {
				row[c] = cell{ch: r, kind: cellLabel}
			}
			c++
		}
	}
	if g.scene.Guide.Visible {
		if c := g.col(g.scene.Guide.X); c >= 0 && c < g.cols {
			for _, row := range out {
				if row[c].kind == cellEmpty {
					row[c] = cell{ch: '│', kind: cellGuide}
				}
			}
		}
	}
	return out
}

// axis draws the tick marks and their labels.
func (g grid) axis() (marks, labels []cell) {
	marks = g.blank()
	labels = g.blank()
	for i := range marks {
		marks[i] = cell{ch: '─', kind: cellAxis}
	}
	next := 0
	for _, t := range g.scene.Axis.Ticks {
		c := g.col(t.X)
		if c < 0 || c >= g.cols {
			continue
		}
		marks[c] = cell{ch: '┬', kind: cellAxis}
		text := []rune(t.Label)
		start := c - len(text)/2
		if start < next || start+len(text) > g.cols {
			continue
		}
		if start < 0 {
			start = 0
		}
		for j, r := range text {
			labels[start+j] = cell{ch: r, kind: cellAxis}
		}
		next = start + len(text) + 1
	}
	return marks, labels
}

// render turns a row of cells into styled text, one style run at a time.
func render(row []cell) string {
	var sb strings.Builder
	for i := 0; i < len(row); {
		j := i
		var run strings.Builder
		for j < len(row) && row[j].kind == row[i].kind && row[j].fill == row[i].fill {
			run.WriteRune(row[j].ch)
			j++
		}
		sb.WriteString(styleOf(row[i]).Render(run.String()))
		i = j
	}
	return sb.String()
}

func styleOf(c cell) lipgloss.Style {
	switch c.kind {
	case cellBar:
		return fillStyle(c.fill)
	case cellLabel:
		return labelStyle
	case cellGuide:
		return guideStyle
	case cellAxis:
		return axisStyle
	}
	return lipgloss.NewStyle()
}

// gutter renders a band name padded or cut to width, with the row marker.
func gutter(name string, width int, current bool) string {
	marker := " "
	if current {
		marker = "▸"
	}
	r := []rune(name)
	if len(r) > width-2 {
		r = append(r[:width-3], '…')
	}
	return marker + nameStyle.Render(string(r)+strings.Repeat(" ", width-2-len(r))) + " "
}

// plain returns the visible text of a row, without styling.
func plain(row []cell) string {
	var sb strings.Builder
	for _, c := range row {
		sb.WriteRune(c.ch)
	}
	return sb.String()
}
