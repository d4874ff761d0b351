package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Alg      key.Binding
	Clip     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Help     key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Reset    key.Binding
	Files    key.Binding
	Open     key.Binding
	Paste    key.Binding
	Vertices key.Binding
	Inspect  key.Binding
	Save     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
		Alg:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dda/bresenham")),
		Clip:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clip")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next polygon")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev polygon")),
		Help:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "help")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "pan")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "pan")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "pan")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "pan")),
		Reset:    key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset view")),
		Files:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "files")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Paste:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste wkt")),
		Vertices: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "vertices")),
		Inspect:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save image")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Alg, k.Clip, k.Next, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Alg, k.Clip, k.Next, k.Prev},
		{k.ZoomIn, k.ZoomOut, k.Up, k.Down, k.Left, k.Right, k.Reset},
		{k.Files, k.Open, k.Paste, k.Save},
		{k.Vertices, k.Inspect, k.Help, k.Quit},
	}
}
