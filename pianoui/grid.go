package pianoui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rapidmidiex/rmxpiano/layout"
	"github.com/rapidmidiex/rmxpiano/styles"
)

type (
	CellKind int

	// Cell is one terminal character of the keyboard.
	Cell struct {
		Kind    CellKind
		MIDI    int
		Pressed bool
		// Qwerty binding drawn at the bottom of the key, 0 for none.
		Label rune
	}

	shade int
)

const (
	Gap CellKind = iota
	NaturalCell
	AccidentalCell
)

const (
	gapShade shade = iota
	naturalShade
	accidentalShade
	pressedShade
)

var shadeStyles = map[shade]lipgloss.Style{
	gapShade:        styles.Gutter,
	naturalShade:    styles.NaturalKey,
	accidentalShade: styles.AccidentalKey,
	pressedShade:    styles.PressedKey,
}

// Grid rasterizes the keyboard into rows of cols cells. Keys hang from the top row, so a
// key of height h fills the first h percent of the rows.
func Grid(kb *layout.Keyboard, pressed layout.NoteSet, labels map[int]rune, cols, rows int) [][]Cell {
	grid := make([][]Cell, max(rows, 0))
	for y := range grid {
		grid[y] = make([]Cell, max(cols, 0))
	}
	if cols <= 0 || rows <= 0 {
		return grid
	}

	keys := kb.Keys(pressed)
	// Accidentals are painted over the naturals they overlap.
	for _, accidentals := range []bool{false, true} {
		for _, g := range keys {
			if g.IsAccidental == accidentals {
				paint(grid, g, labels[g.MIDI], cols, rows)
			}
		}
	}
	return grid
}

func paint(grid [][]Cell, g layout.Geometry, label rune, cols, rows int) {
	x0 := max(scale(g.Left, cols), 0)
	x1 := scale(g.Left+g.Width, cols)
	if !g.IsAccidental && x1-x0 >= 3 {
		// Rounding swallows the gutter, keep a seam between wide naturals.
		x1--
	}
	x1 = min(max(x1, x0+1), cols)
	if x0 >= cols {
		return
	}
	h := min(max(scale(g.Height, rows), 1), rows)

	cell := Cell{Kind: NaturalCell, MIDI: g.MIDI, Pressed: g.IsPressed}
	if g.IsAccidental {
		cell.Kind = AccidentalCell
	}
	for y := 0; y < h; y++ {
		for x := x0; x < x1; x++ {
			grid[y][x] = cell
		}
	}
	if label != 0 {
		grid[h-1][(x0+x1-1)/2].Label = label
	}
}

func scale(percent float64, n int) int {
	return int(math.Round(percent / 100 * float64(n)))
}

func (c Cell) shade() shade {
	switch {
	case c.Kind == Gap:
		return gapShade
	case c.Pressed:
		return pressedShade
	case c.Kind == AccidentalCell:
		return accidentalShade
	default:
		return naturalShade
	}
}

// renderGrid styles runs of cells that share a shade.
func renderGrid(grid [][]Cell) string {
	lines := make([]string, len(grid))
	for y, row := range grid {
		var line, run strings.Builder
		cur := gapShade
		flush := func() {
			if run.Len() > 0 {
				line.WriteString(shadeStyles[cur].Render(run.String()))
				run.Reset()
			}
		}
		for _, c := range row {
			if s := c.shade(); s != cur {
				flush()
				cur = s
			}
			if c.Label != 0 {
				run.WriteRune(c.Label)
			} else {
				run.WriteByte(' ')
			}
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}
