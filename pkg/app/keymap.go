package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// applicationKeyMap defines a set of keybindings. To work for help it must
// satisfy help.KeyMap.
type applicationKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Back   key.Binding
	Search key.Binding
	Help   key.Binding
	Quit   key.Binding

	Purpose key.Binding
	WiFi    key.Binding
	AC      key.Binding
	Sockets key.Binding
	Reset   key.Binding

	Fit     key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view. It's part
// of the help.KeyMap interface.
func (k applicationKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Purpose, k.WiFi, k.AC, k.Sockets, k.Reset, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view. It's part of the
// help.KeyMap interface.
func (k applicationKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back},
		{k.Search, k.Purpose, k.WiFi, k.AC, k.Sockets, k.Reset},
		{k.Fit, k.ZoomIn, k.ZoomOut},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns a default set of keybindings.
func DefaultKeyMap() applicationKeyMap {
	return applicationKeyMap{
		// Browsing.
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),

		// Filters.
		Purpose: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "purpose"),
		),
		WiFi: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "wi-fi"),
		),
		AC: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "ac"),
		),
		Sockets: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "charging"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),

		// Map.
		Fit: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "fit map"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
	}
}
