// Package pianoui draws a keyboard layout in the terminal and lets the qwerty keyboard
// play it.
package pianoui

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/rapidmidiex/rmxpiano/keymap"
	"github.com/rapidmidiex/rmxpiano/layout"
	"github.com/rapidmidiex/rmxpiano/styles"
	"github.com/rapidmidiex/rmxpiano/vpiano"
)

const (
	defaultCols = 80
	defaultRows = 24
	// Rows taken by the header, status bar, help and padding.
	chromeRows = 8
	minRows    = 3
)

type (
	// BackMsg asks the parent view to close the keyboard.
	BackMsg struct{}

	Model struct {
		kb      *layout.Keyboard
		pressed layout.NoteSet
		// MIDI number bound to the first qwerty key.
		bindStart int
		bindings  vpiano.NoteKeyMap

		// Keyboard size in terminal cells.
		cols, rows int
		// No labels and no playing, the keyboard is only shown.
		disabled bool

		keys keymap.Mapping
		help help.Model
		log  *log.Logger
	}
)

func New(kb *layout.Keyboard, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}
	m := Model{
		kb:      kb,
		pressed: layout.NewNoteSet(),
		keys:    keymap.DefaultMapping,
		help:    help.New(),
		log:     logger,
	}
	m.bind(firstC(kb.Range()))

	cols, rows := defaultCols, defaultRows
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		cols, rows = w, h
	}
	m.resize(cols, rows)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.GoBack):
			return m, goBack
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case m.disabled:
			// Only back and help work on a disabled keyboard.
		case key.Matches(msg, m.keys.ReleaseAll):
			m.pressed = layout.NewNoteSet()
		case key.Matches(msg, m.keys.OctaveDown):
			m.shift(-12)
		case key.Matches(msg, m.keys.OctaveUp):
			m.shift(12)
		default:
			note, ok := m.bindings[msg.String()]
			if !ok || !m.kb.Range().Contains(note.MIDI) {
				break
			}
			// Terminals report presses but not releases, so a key stays down until it is hit again.
			pressed := layout.NewNoteSet(m.pressed.Slice()...)
			down := pressed.Toggle(note.MIDI)
			m.pressed = pressed
			m.log.Debug("key", "note", note.String(), "down", down)
		}
	}
	return m, nil
}

func (m Model) View() string {
	doc := strings.Builder{}

	r := m.kb.Range()
	header := fmt.Sprintf("%s to %s, %d natural keys", vpiano.Classify(r.Start), vpiano.Classify(r.End), m.kb.NaturalKeys())
	doc.WriteString(styles.BoldStyle.Render(header) + "\n\n")

	var labels map[int]rune
	if !m.disabled {
		labels = m.labels()
	}
	doc.WriteString(renderGrid(Grid(m.kb, m.pressed, labels, m.cols, m.rows)) + "\n\n")

	names := make([]string, 0, len(m.pressed))
	for _, n := range m.pressed.Slice() {
		names = append(names, vpiano.Classify(n).String())
	}
	badge := "keys from " + vpiano.Classify(m.bindStart).String()
	if m.disabled {
		badge = "disabled"
	}
	status := styles.StatusStyle.Render(badge) + styles.StatusText.Render(strings.Join(names, " "))
	doc.WriteString(status + "\n")

	doc.WriteString(styles.HelpMenu.Render(m.help.View(m.keys)))
	return styles.DocStyle.Render(doc.String())
}

// WithDisabled returns a copy that hides the qwerty labels and ignores every key but
// back and help. Disabling releases all keys.
func (m Model) WithDisabled(disabled bool) Model {
	m.disabled = disabled
	if disabled {
		m.pressed = layout.NewNoteSet()
	}
	return m
}

// Pressed returns the notes currently held down, lowest first.
func (m Model) Pressed() []int {
	return m.pressed.Slice()
}

// BindStart returns the note played by the first qwerty key.
func (m Model) BindStart() int {
	return m.bindStart
}

// Size returns the keyboard size in terminal cells.
func (m Model) Size() (cols, rows int) {
	return m.cols, m.rows
}

func (m *Model) bind(start int) {
	m.bindStart = start
	m.bindings = vpiano.MakeNotes(start).ToBindingMap()
}

// shift moves the qwerty bindings by delta semitones as long as one bound key stays
// inside the range.
func (m *Model) shift(delta int) {
	start := m.bindStart + delta
	last := start + len(m.bindings) - 1
	r := m.kb.Range()
	if start > r.End || last < r.Start {
		return
	}
	m.bind(start)
}

// resize fits the keyboard to the terminal. Terminal cells are about twice as tall as
// they are wide, so the layout height is halved.
func (m *Model) resize(width, height int) {
	m.cols = max(width-styles.DocStyle.GetHorizontalFrameSize(), 1)
	want := int(math.Round(m.kb.Dimensions(float64(m.cols)).Height / 2))
	m.rows = max(min(want, height-chromeRows), minRows)
}

func (m Model) labels() map[int]rune {
	labels := make(map[int]rune, len(m.bindings))
	for k, n := range m.bindings {
		labels[n.MIDI] = []rune(k)[0]
	}
	return labels
}

// firstC is the lowest C in the range, or the start when the range holds no C.
func firstC(r layout.Range) int {
	c := r.Start + (12-vpiano.PitchClass(r.Start))%12
	if c > r.End {
		return r.Start
	}
	return c
}

func goBack() tea.Msg {
	return BackMsg{}
}
