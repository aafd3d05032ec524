package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type Mapping struct {
	Select     key.Binding
	GoBack     key.Binding
	Quit       key.Binding
	ReleaseAll key.Binding
	OctaveDown key.Binding
	OctaveUp   key.Binding
	Help       key.Binding
}

var DefaultMapping = Mapping{
	Select: key.NewBinding(
		key.WithKeys(tea.KeyEnter.String()),
		key.WithHelp("enter", "select"),
	),
	GoBack: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "go back"),
	),
	Quit: key.NewBinding(
		key.WithKeys(tea.KeyCtrlC.String()),
		key.WithHelp("ctrl+c", "quit"),
	),
	ReleaseAll: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "release all"),
	),
	OctaveDown: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "octave down"),
	),
	OctaveUp: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "octave up"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
}

// ShortHelp implements help.KeyMap.
func (m Mapping) ShortHelp() []key.Binding {
	return []key.Binding{m.OctaveDown, m.OctaveUp, m.ReleaseAll, m.Help}
}

// FullHelp implements help.KeyMap.
func (m Mapping) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.OctaveDown, m.OctaveUp, m.ReleaseAll},
		{m.GoBack, m.Help, m.Quit},
	}
}
