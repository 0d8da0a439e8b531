package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit    key.Binding
	Backspace key.Binding
	Flee      key.Binding
	Quit      key.Binding
	Close     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "strike"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("backspace", "erase"),
		),
		Flee: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "flee"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Close: key.NewBinding(
			key.WithKeys("q", "enter", "esc"),
			key.WithHelp("q", "close"),
		),
	}
}
