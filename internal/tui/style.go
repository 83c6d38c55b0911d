package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	axisFGColor  = "245"
	guideFGColor = "250"
	labelFGColor = "#e0e0e0"
)

var (
	appStyle    = lipgloss.NewStyle().Margin(1, 2)
	headerStyle = lipgloss.NewStyle().Bold(true)
	chartStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tipStyle    = lipgloss.NewStyle().
			Background(lipgloss.Color("153")).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)

	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(axisFGColor))
	guideStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(guideFGColor))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(labelFGColor))
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(axisFGColor))
)

// namedColors maps the SVG colour keywords used by the default palette to
// ANSI colours.
var namedColors = map[string]string{
	"black":  "0",
	"red":    "9",
	"green":  "10",
	"yellow": "11",
	"blue":   "12",
	"purple": "13",
	"cyan":   "14",
	"white":  "15",
	"orange": "214",
	"gray":   "245",
	"grey":   "245",
}

// fillStyle returns the terminal style for an SVG fill value. Hex colours
// pass through; unknown keywords fall back to the terminal's default.
func fillStyle(fill string) lipgloss.Style {
	f := strings.ToLower(strings.TrimSpace(fill))
	if c, ok := namedColors[f]; ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	if strings.HasPrefix(f, "#") {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(f))
	}
	return lipgloss.NewStyle()
}
