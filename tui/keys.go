package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the search screen
type KeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	PrevGame key.Binding
	NextGame key.Binding
	Enter    key.Binding
	Space    key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous game"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next game"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Space: key.NewBinding(
			key.WithKeys(" ", "space"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}
