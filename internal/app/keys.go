package app

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings of the demo screen
type keyMap struct {
	Open  key.Binding
	Close key.Binding
	Input key.Binding
	Snap  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Open: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Input: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "type"),
		),
		Snap: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "snap shut"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// hints returns the bindings worth showing for the overlay status
func (k keyMap) hints(open, typing bool) []key.Binding {
	switch {
	case typing:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
			k.Close,
		}
	case open:
		return []key.Binding{k.Close, k.Snap, k.Input, k.Quit}
	default:
		return []key.Binding{k.Open, k.Input, k.Quit}
	}
}
