package tui

import "charm.land/bubbles/v2/key"

// keyMap holds every binding of the main view. Plane bindings are only
// active while no text field has focus.
type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Blur      key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Snap      key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	RangeX    key.Binding
	RangeY    key.Binding
	Dismiss   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next control")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev control")),
		Blur:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to plane")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Snap:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle snap")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		RangeX:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "x range")),
		RangeY:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "y range")),
		Dismiss:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dismiss toast")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Snap, k.ZoomIn, k.ZoomOut, k.RangeX, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Next, k.Prev, k.Blur, k.Snap},
		{k.ZoomIn, k.ZoomOut, k.RangeX, k.RangeY},
		{k.Dismiss, k.Help, k.Quit},
	}
}
