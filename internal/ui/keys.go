package ui

import (
	"charm.land/bubbles/v2/key"

	"github.com/kpumuk/gapscope/internal/ui/components/help"
)

// KeyMap defines all global keybindings.
type KeyMap struct {
	Quit     key.Binding
	PrevYear key.Binding
	NextYear key.Binding
	Yank     key.Binding
	Retry    key.Binding
	Help     key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		PrevYear: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "prev year"),
		),
		NextYear: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next year"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy series"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp returns keybindings to show in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevYear, k.NextYear, k.Yank, k.Retry, k.Help, k.Quit}
}

// HelpSections groups the keybindings for the help panel.
func (k KeyMap) HelpSections() []help.Section {
	return []help.Section{
		{
			Title:    "Plot",
			Lines:    []string{"Hover a marker to see its", "population over time."},
			Bindings: []key.Binding{k.PrevYear, k.NextYear},
		},
		{
			Title:    "Tooltip",
			Bindings: []key.Binding{k.Yank},
		},
		{
			Title:    "General",
			Bindings: []key.Binding{k.Retry, k.Help, k.Quit},
		},
	}
}
