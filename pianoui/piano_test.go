package pianoui_test

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/rapidmidiex/rmxpiano/layout"
	"github.com/rapidmidiex/rmxpiano/pianoui"
)

func oneOctave(t *testing.T) *layout.Keyboard {
	t.Helper()
	kb, err := layout.New(layout.Range{Start: 60, End: 72}, layout.DefaultConfig())
	require.NoError(t, err)
	return kb
}

func TestGrid(t *testing.T) {
	kb := oneOctave(t)
	grid := pianoui.Grid(kb, layout.NewNoteSet(64), map[int]rune{60: 'a'}, 80, 10)
	require.Len(t, grid, 10)
	require.Len(t, grid[0], 80)

	t.Run("naturals fill every row", func(t *testing.T) {
		require.Equal(t, pianoui.NaturalCell, grid[0][0].Kind)
		require.Equal(t, 60, grid[9][0].MIDI)
		require.Equal(t, 72, grid[9][75].MIDI)
	})

	t.Run("accidentals cover the top of the naturals", func(t *testing.T) {
		require.Equal(t, pianoui.AccidentalCell, grid[0][8].Kind)
		require.Equal(t, 61, grid[0][8].MIDI)
		require.Equal(t, pianoui.NaturalCell, grid[9][8].Kind)
		require.Equal(t, 60, grid[9][8].MIDI)
	})

	t.Run("seams between naturals", func(t *testing.T) {
		require.Equal(t, pianoui.Gap, grid[9][9].Kind)
		require.Equal(t, 62, grid[9][10].MIDI)
	})

	t.Run("pressed and labelled keys", func(t *testing.T) {
		for _, row := range grid {
			for _, c := range row {
				if c.Kind != pianoui.Gap {
					require.Equal(t, c.MIDI == 64, c.Pressed)
				}
			}
		}
		require.Equal(t, 'a', grid[9][4].Label)
	})

	t.Run("empty grid", func(t *testing.T) {
		require.Empty(t, pianoui.Grid(kb, nil, nil, 0, 0))
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m pianoui.Model, msg tea.Msg) (pianoui.Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(pianoui.Model)
	require.True(t, ok)
	return got, cmd
}

func TestUpdate(t *testing.T) {
	m := pianoui.New(oneOctave(t), log.New(io.Discard))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 84, Height: 40})

	t.Run("sizes the keyboard to the window", func(t *testing.T) {
		cols, rows := m.Size()
		require.Equal(t, 80, cols)
		// 80 * 1/8 / 0.15 / 2 rounds to 33, capped by the window.
		require.Equal(t, 32, rows)

		small, _ := update(t, m, tea.WindowSizeMsg{Width: 84, Height: 5})
		_, rows = small.Size()
		require.Equal(t, 3, rows)
	})

	t.Run("qwerty keys toggle notes", func(t *testing.T) {
		require.Equal(t, 60, m.BindStart())
		next, _ := update(t, m, runes("a"))
		next, _ = update(t, next, runes("e"))
		require.Equal(t, []int{60, 63}, next.Pressed())
		require.Empty(t, m.Pressed())

		next, _ = update(t, next, runes("a"))
		require.Equal(t, []int{63}, next.Pressed())

		next, _ = update(t, next, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		require.Empty(t, next.Pressed())
	})

	t.Run("octave shift stays inside the range", func(t *testing.T) {
		next, _ := update(t, m, runes("z"))
		require.Equal(t, 48, next.BindStart())
		next, _ = update(t, next, runes("a"))
		require.Empty(t, next.Pressed())
		next, _ = update(t, next, runes("z"))
		require.Equal(t, 48, next.BindStart())

		next, _ = update(t, m, runes("x"))
		require.Equal(t, 72, next.BindStart())
		next, _ = update(t, next, runes("x"))
		require.Equal(t, 72, next.BindStart())
		next, _ = update(t, next, runes("a"))
		require.Equal(t, []int{72}, next.Pressed())
	})

	t.Run("esc goes back", func(t *testing.T) {
		_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)
		require.Equal(t, pianoui.BackMsg{}, cmd())
	})

	t.Run("view names the range", func(t *testing.T) {
		next, _ := update(t, m, runes("a"))
		view := next.View()
		require.Contains(t, view, "C4 to C5, 8 natural keys")
		require.Contains(t, view, "keys from C4")
	})
}

func TestDisabled(t *testing.T) {
	m := pianoui.New(oneOctave(t), log.New(io.Discard))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 84, Height: 20})
	m, _ = update(t, m, runes("a"))
	require.Equal(t, []int{60}, m.Pressed())

	m = m.WithDisabled(true)
	require.Empty(t, m.Pressed())

	t.Run("playing keys are ignored", func(t *testing.T) {
		next, _ := update(t, m, runes("a"))
		require.Empty(t, next.Pressed())
		next, _ = update(t, next, runes("x"))
		require.Equal(t, 60, next.BindStart())
	})

	t.Run("esc still goes back", func(t *testing.T) {
		_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)
		require.Equal(t, pianoui.BackMsg{}, cmd())
	})

	t.Run("status shows the keyboard is disabled", func(t *testing.T) {
		view := m.View()
		require.Contains(t, view, "disabled")
		require.NotContains(t, view, "keys from")
	})

	t.Run("enabling again restores play", func(t *testing.T) {
		next, _ := update(t, m.WithDisabled(false), runes("a"))
		require.Equal(t, []int{60}, next.Pressed())
	})
}
