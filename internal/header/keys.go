package header

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the header key bindings used while no navigator has focus.
type KeyMap struct {
	Departments key.Binding
	Search      key.Binding
	Close       key.Binding
	Refresh     key.Binding
	Quit        key.Binding
}

// ShortHelp returns the bindings for the help bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Departments, k.Search, k.Close, k.Refresh, k.Quit}
}

// FullHelp returns the bindings grouped for expanded help.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Departments, k.Search, k.Close},
		{k.Refresh, k.Quit},
	}
}

// DefaultKeyMap returns the header key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Departments: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "departments"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
