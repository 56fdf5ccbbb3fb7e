package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the model handles itself. Every other key goes
// to the text input.
type KeyMap struct {
	Quit         key.Binding
	Reset        key.Binding
	ToggleEvents key.Binding
}

// DefaultKeyMap returns the default bindings. Quit avoids printable keys,
// which belong to the field.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset field"),
		),
		ToggleEvents: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle events"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reset, k.ToggleEvents, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
