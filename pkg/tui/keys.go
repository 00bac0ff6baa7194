package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Tab      key.Binding
	Search   key.Binding
	Skill    key.Binding
	Location key.Binding
	Type     key.Binding
	Stronger key.Binding
	Weaker   key.Binding
	Reset    key.Binding
	Demo     key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Fit      key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Next     key.Binding
	Enter    key.Binding
	Escape   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "graph/people"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Skill: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "skill filter"),
	),
	Location: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "location filter"),
	),
	Type: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "connection type"),
	),
	Stronger: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "min strength +1"),
	),
	Weaker: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "min strength -1"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset filter"),
	),
	Demo: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "demo data"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
	Fit: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "pan"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "pan"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "pan"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "pan"),
	),
	Next: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "select next"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply/select"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel/deselect"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Tab, k.Type, k.Weaker, k.Stronger, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Skill, k.Location, k.Type},
		{k.Weaker, k.Stronger, k.Reset, k.Demo},
		{k.ZoomIn, k.ZoomOut, k.Fit, k.Next},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Tab, k.Enter, k.Escape, k.Quit},
	}
}
