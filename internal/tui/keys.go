package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the gallery view.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Select  key.Binding
	Search  key.Binding
	Apply   key.Binding
	Leave   key.Binding
	Style   key.Binding
	ShowAll key.Binding
	Random  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "move right"),
		),

		// Actions
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Leave: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to gallery"),
		),
		Style: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next style"),
		),
		ShowAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "show all"),
		),
		Random: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "random"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// galleryHelp lists the bindings shown while the gallery has focus.
func (k KeyMap) galleryHelp() []key.Binding {
	return []key.Binding{k.Search, k.Style, k.ShowAll, k.Random, k.Select, k.Quit}
}

// searchHelp lists the bindings shown while typing a search.
func (k KeyMap) searchHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Style, k.Leave}
}
