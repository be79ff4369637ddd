package app

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the picker's key bindings.
type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Paste  key.Binding
	Copy   key.Binding
	Search key.Binding
	Blur   key.Binding
	Tab    key.Binding
	Pet    key.Binding
	Help   key.Binding
	Quit   key.Binding
	Force  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("down", "right"),
			key.WithHelp("↓/→", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up", "left"),
			key.WithHelp("↑/←", "prev"),
		),
		Paste: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "paste"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y", "ctrl+y"),
			key.WithHelp("y", "copy"),
		),
		Search: key.NewBinding(
			key.WithKeys("/", "ctrl+f"),
			key.WithHelp("/", "search"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave search"),
		),
		Tab: key.NewBinding(key.WithKeys("tab", "shift+tab")),
		Pet: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pet the cat"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Force: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Paste, k.Copy, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Paste, k.Copy},
		{k.Search, k.Blur, k.Pet},
		{k.Help, k.Quit},
	}
}
