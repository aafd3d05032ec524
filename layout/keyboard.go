// Package layout computes the horizontal geometry of piano keys.
//
// Natural keys split the keyboard width into equal slots. Accidentals are placed with
// a per note offset table and overlap the neighbouring natural slots. All values are
// percentages of the keyboard width, except heights which are percentages of the
// keyboard height.
//
//	kb, err := layout.New(layout.Range{Start: 60, End: 72}, layout.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	keys := kb.Keys(layout.NewNoteSet(60, 64, 67))
package layout

import (
	"strconv"

	"github.com/rapidmidiex/rmxpiano/rmxerr"
	"github.com/rapidmidiex/rmxpiano/vpiano"
)

type (
	// Keyboard is a validated range and config. It is immutable and safe for concurrent use.
	Keyboard struct {
		rng      Range
		cfg      Config
		naturals int
		// Width of a natural key slot as a fraction of the keyboard, gutter included.
		unit        float64
		start       vpiano.Note
		startOffset float64
	}

	Geometry struct {
		MIDI int `json:"midi"`
		// Scientific pitch name, ex: "Db4".
		Name         string  `json:"name"`
		Left         float64 `json:"left"`
		Width        float64 `json:"width"`
		Height       float64 `json:"height"`
		IsAccidental bool    `json:"isAccidental"`
		IsPressed    bool    `json:"isPressed"`
	}

	// Style is a Geometry rendered as CSS lengths.
	Style struct {
		Left   string `json:"left"`
		Width  string `json:"width"`
		Height string `json:"height"`
	}
)

// New validates the range and config and precomputes what every key shares.
func New(r Range, cfg Config) (*Keyboard, error) {
	naturals, err := r.CountNaturalKeys()
	if err != nil {
		return nil, err
	}
	if naturals <= 0 {
		return nil, rmxerr.New(rmxerr.DegenerateRange, "range %d-%d has no natural keys", r.Start, r.End)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg = cfg.Clone()
	start := vpiano.Classify(r.Start)
	return &Keyboard{
		rng:         r,
		cfg:         cfg,
		naturals:    naturals,
		unit:        1 / float64(naturals),
		start:       start,
		startOffset: cfg.NoteOffsets[start.Name],
	}, nil
}

// Layout computes the geometry of every key in r.
func Layout(r Range, cfg Config, pressed NoteSet) ([]Geometry, error) {
	kb, err := New(r, cfg)
	if err != nil {
		return nil, err
	}
	return kb.Keys(pressed), nil
}

func (k *Keyboard) Range() Range { return k.rng }

// Config returns a copy of the sizing the keyboard was built with.
func (k *Keyboard) Config() Config { return k.cfg.Clone() }

func (k *Keyboard) NaturalKeys() int { return k.naturals }

// NaturalKeyWidth is the share of the keyboard width given to one natural key slot,
// gutter included.
func (k *Keyboard) NaturalKeyWidth() float64 { return k.unit }

// Position returns the left edge of the key in natural key widths from the start note.
func (k *Keyboard) Position(midi int) float64 {
	n := vpiano.Classify(midi)
	offset := k.cfg.NoteOffsets[n.Name] - k.startOffset
	return offset + float64(naturalsPerOctave*(n.Octave-k.start.Octave))
}

// Key computes the geometry of one key. The gutter narrows the key but never moves it,
// so gaps appear on the right of each key.
func (k *Keyboard) Key(midi int, pressed NoteSet) Geometry {
	n := vpiano.Classify(midi)
	kc := k.cfg.keyConfig(n.IsAccidental)
	isPressed := pressed.Has(midi)

	height := kc.HeightRatio
	if isPressed {
		height = kc.HeightPressedRatio
	}

	return Geometry{
		MIDI:         midi,
		Name:         n.String(),
		Left:         k.Position(midi) * k.unit * 100,
		Width:        kc.WidthRatio * k.unit * (1 - k.cfg.GutterRatio) * 100,
		Height:       height * 100,
		IsAccidental: n.IsAccidental,
		IsPressed:    isPressed,
	}
}

// Keys computes the geometry of the whole range in ascending MIDI order.
func (k *Keyboard) Keys(pressed NoteSet) []Geometry {
	keys := make([]Geometry, 0, min(k.rng.Len(), preallocMax))
	for midi := k.rng.Start; midi <= k.rng.End; midi++ {
		keys = append(keys, k.Key(midi, pressed))
		if midi == k.rng.End {
			break
		}
	}
	return keys
}

// Style renders the geometry the way a browser expects it, ex: "87.5%".
func (g Geometry) Style() Style {
	return Style{
		Left:   Percent(g.Left),
		Width:  Percent(g.Width),
		Height: Percent(g.Height),
	}
}

func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
