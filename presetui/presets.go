package presetui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rapidmidiex/rmxpiano/keymap"
	"github.com/rapidmidiex/rmxpiano/layout"
	"github.com/rapidmidiex/rmxpiano/styles"
	"github.com/rapidmidiex/rmxpiano/vpiano"
)

type Preset struct {
	Name  string
	Range layout.Range
}

// Presets are the common instrument sizes.
var Presets = []Preset{
	{Name: "One octave", Range: layout.Range{Start: 60, End: 72}},
	{Name: "25 keys", Range: layout.Range{Start: 48, End: 72}},
	{Name: "49 keys", Range: layout.Range{Start: 36, End: 84}},
	{Name: "61 keys", Range: layout.Range{Start: 36, End: 96}},
	{Name: "88 keys", Range: layout.Range{Start: vpiano.LowestPianoKey, End: vpiano.HighestPianoKey}},
}

// Selected is sent when a preset is picked.
type Selected struct {
	Preset Preset
}

type Model struct {
	presets []Preset
	table   table.Model
	help    help.Model
	keys    keymap.Mapping
}

// New lists presets, the configured range first when it is not already one of them.
func New(configured layout.Range) Model {
	presets := make([]Preset, 0, len(Presets)+1)
	known := false
	for _, p := range Presets {
		known = known || p.Range == configured
	}
	if n, err := configured.CountNaturalKeys(); !known && err == nil && n > 0 {
		presets = append(presets, Preset{Name: "Configured", Range: configured})
	}
	presets = append(presets, Presets...)

	return Model{
		presets: presets,
		table:   makePresetTable(presets),
		help:    help.New(),
		keys:    keymap.DefaultMapping,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width - 10)
		m.help.Width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Select) {
			if i := m.table.Cursor(); i >= 0 && i < len(m.presets) {
				cmds = append(cmds, presetSelect(m.presets[i]))
			}
		}
	}
	newTable, cmd := m.table.Update(msg)
	m.table = newTable
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	doc := strings.Builder{}
	doc.WriteString(styles.BaseStyle.Render(m.table.View()))
	doc.WriteString("\n" + styles.HelpMenu.Render(m.help.ShortHelpView([]key.Binding{m.keys.Select, m.keys.Quit})))
	return styles.DocStyle.Render(doc.String())
}

// Presets returns the listed presets in table order.
func (m Model) Presets() []Preset {
	return m.presets
}

func makePresetTable(presets []Preset) table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 12},
		{Title: "Range", Width: 12},
		{Title: "Keys", Width: 6},
		{Title: "Naturals", Width: 9},
	}

	rows := make([]table.Row, 0, len(presets))
	for _, p := range presets {
		naturals, _ := p.Range.CountNaturalKeys()
		rows = append(rows, table.Row{
			p.Name,
			fmt.Sprintf("%s-%s", vpiano.Classify(p.Range.Start), vpiano.Classify(p.Range.End)),
			strconv.Itoa(p.Range.Len()),
			strconv.Itoa(naturals),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+3),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func presetSelect(p Preset) tea.Cmd {
	return func() tea.Msg {
		return Selected{Preset: p}
	}
}
