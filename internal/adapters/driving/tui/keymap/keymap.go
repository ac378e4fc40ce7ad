// Package keymap defines keybindings for the page reader.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the reader's keybindings.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding

	// Back leaves the similar verses view.
	Back key.Binding

	NextPage key.Binding
	PrevPage key.Binding

	// Up and Down move between ayah lines in the reader and between
	// entries in the similar verses list.
	Up   key.Binding
	Down key.Binding

	// Select opens the selected similar verse.
	Select key.Binding

	// GoTo opens the page or verse prompt.
	GoTo key.Binding

	// Similar lists verses similar to the selected verse.
	Similar key.Binding

	// NextVerse cycles through the verses of the selected line.
	NextVerse key.Binding

	// Search opens the search view, or refocuses its query.
	Search key.Binding

	// Field cycles the searched field while typing a query.
	Field key.Binding
}

func bind(label, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// DefaultKeyMap returns the default keybindings. Page turns follow
// left-to-right terminal conventions.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:      bind("q", "quit", "q", "ctrl+c"),
		Help:      bind("?", "help", "?"),
		Back:      bind("esc", "back", "esc"),
		NextPage:  bind("→/l", "next page", "right", "l", "pgdown"),
		PrevPage:  bind("←/h", "previous page", "left", "h", "pgup"),
		Up:        bind("↑/k", "up", "up", "k"),
		Down:      bind("↓/j", "down", "down", "j"),
		Select:    bind("enter", "open", "enter"),
		GoTo:      bind("g", "go to", "g", ":"),
		Similar:   bind("s", "similar", "s"),
		NextVerse: bind("tab", "next verse", "tab"),
		Search:    bind("/", "search", "/"),
		Field:     bind("tab", "field", "tab"),
	}
}

// ShortHelp is shown in the status bar while reading.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.GoTo, k.Search, k.Similar, k.Help, k.Quit}
}

// ListHelp is shown in the status bar of the similar verses view.
func (k *KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back}
}

// QueryHelp is shown in the status bar while typing a search.
func (k *KeyMap) QueryHelp() []key.Binding {
	return []key.Binding{k.Field, k.Select, k.Back}
}

// FullHelp groups every binding for the help view: navigation, selection,
// search, then general keys.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevPage, k.NextPage, k.GoTo},
		{k.Up, k.Down, k.NextVerse, k.Similar, k.Select},
		{k.Search, k.Field},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches reports whether keyStr is one of binding's keys.
func Matches(keyStr string, binding key.Binding) bool {
	return slices.Contains(binding.Keys(), keyStr)
}
