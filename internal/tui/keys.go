package tui

import "github.com/charmbracelet/bubbles/key"

// Keymap lists the viewer's key bindings.
type Keymap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Click    key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	WheelIn  key.Binding
	WheelOut key.Binding
	PanLeft  key.Binding
	PanRight key.Binding
	Reset    key.Binding
	Leave    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var Keys = Keymap{
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "pointer left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "pointer right"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("k/↑", "row up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/↓", "row down"),
	),
	Click: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select bar"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in ×2"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out ×2"),
	),
	WheelIn: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "scroll in"),
	),
	WheelOut: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "scroll out"),
	),
	PanLeft: key.NewBinding(
		key.WithKeys("H", "shift+left"),
		key.WithHelp("H", "pan left"),
	),
	PanRight: key.NewBinding(
		key.WithKeys("L", "shift+right"),
		key.WithHelp("L", "pan right"),
	),
	Reset: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "reset zoom"),
	),
	Leave: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "hide pointer"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k Keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Click, k.ZoomIn, k.ZoomOut, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k Keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Leave},
		{k.Click, k.ZoomIn, k.ZoomOut, k.WheelIn, k.WheelOut},
		{k.PanLeft, k.PanRight, k.Reset, k.Help, k.Quit},
	}
}
