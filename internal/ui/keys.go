package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the key bindings and implements help.KeyMap
type keyMap struct {
	Prev         key.Binding
	Next         key.Binding
	Focus        key.Binding
	AutoPlay     key.Binding
	MorePerPage  key.Binding
	FewerPerPage key.Binding
	Reload       key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "esc"),
			key.WithHelp("tab", "focus in/out"),
		),
		AutoPlay: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "auto-play"),
		),
		MorePerPage: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more per page"),
		),
		FewerPerPage: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "fewer per page"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
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
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Focus, k.AutoPlay, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Focus},
		{k.AutoPlay, k.MorePerPage, k.FewerPerPage, k.Reload},
		{k.Help, k.Quit},
	}
}
