package layout

import (
	"math"
	"sort"

	"github.com/rapidmidiex/rmxpiano/rmxerr"
	"github.com/rapidmidiex/rmxpiano/vpiano"
)

type (
	// KeyConfig sizes one kind of key relative to a natural key slot and the keyboard height.
	KeyConfig struct {
		WidthRatio         float64 `json:"widthRatio"`
		HeightRatio        float64 `json:"heightRatio"`
		HeightPressedRatio float64 `json:"heightPressedRatio"`
	}

	Config struct {
		// Width of one natural key divided by the keyboard height.
		KeyWidthToHeightRatio float64 `json:"keyWidthToHeightRatio"`
		// Fraction of each natural key slot left empty to the right of the key.
		GutterRatio float64   `json:"gutterRatio"`
		Natural     KeyConfig `json:"naturalKey"`
		Accidental  KeyConfig `json:"accidentalKey"`
		// Horizontal offset of each note name from the C below it, in natural key widths.
		// Keys use the spelling of vpiano.Names.
		NoteOffsets map[string]float64 `json:"noteOffsets"`
	}
)

// naturalsPerOctave is the width of one octave in natural key slots.
const naturalsPerOctave = 7

// DefaultNoteOffsets returns the offset table tuned for the default accidental width.
// Accidentals sit off center between their neighbours to look like a real keyboard.
func DefaultNoteOffsets() map[string]float64 {
	return map[string]float64{
		"C":  0,
		"Db": 0.55,
		"D":  1,
		"Eb": 1.8,
		"E":  2,
		"F":  3,
		"Gb": 3.5,
		"G":  4,
		"Ab": 4.7,
		"A":  5,
		"Bb": 5.85,
		"B":  6,
	}
}

// DefaultConfig returns a new copy of the default sizing. Callers may change any field.
func DefaultConfig() Config {
	return Config{
		KeyWidthToHeightRatio: 0.15,
		GutterRatio:           0.02,
		Natural: KeyConfig{
			WidthRatio:         1,
			HeightRatio:        1,
			HeightPressedRatio: 0.98,
		},
		Accidental: KeyConfig{
			WidthRatio:         0.66,
			HeightRatio:        0.66,
			HeightPressedRatio: 0.65,
		},
		NoteOffsets: DefaultNoteOffsets(),
	}
}

// Clone returns a copy that shares no state with c.
func (c Config) Clone() Config {
	out := c
	if c.NoteOffsets != nil {
		out.NoteOffsets = make(map[string]float64, len(c.NoteOffsets))
		for k, v := range c.NoteOffsets {
			out.NoteOffsets[k] = v
		}
	}
	return out
}

// Validate checks the offset table covers every note name and the ratios are usable.
func (c Config) Validate() error {
	for _, name := range vpiano.Names() {
		if _, ok := c.NoteOffsets[name]; !ok {
			return rmxerr.New(rmxerr.UnknownNoteSymbol, "offset table has no entry for %q", name)
		}
	}
	if len(c.NoteOffsets) != len(vpiano.Names()) {
		extra := make([]string, 0)
		for name := range c.NoteOffsets {
			if n, err := vpiano.Normalize(name); err != nil || n != name {
				extra = append(extra, name)
			}
		}
		sort.Strings(extra)
		return rmxerr.New(rmxerr.UnknownNoteSymbol, "offset table entries %q are not note names", extra)
	}

	for name, v := range c.NoteOffsets {
		if !finite(v) {
			return rmxerr.New(rmxerr.InvalidConfig, "offset of %q must be a finite number, got %v", name, v)
		}
	}
	if !finite(c.KeyWidthToHeightRatio) || c.KeyWidthToHeightRatio <= 0 {
		return rmxerr.New(rmxerr.InvalidConfig, "key width to height ratio must be positive, got %v", c.KeyWidthToHeightRatio)
	}
	if !finite(c.GutterRatio) || c.GutterRatio < 0 || c.GutterRatio >= 1 {
		return rmxerr.New(rmxerr.InvalidConfig, "gutter ratio must be in [0, 1), got %v", c.GutterRatio)
	}
	for kind, kc := range map[string]KeyConfig{"natural": c.Natural, "accidental": c.Accidental} {
		for _, v := range []float64{kc.WidthRatio, kc.HeightRatio, kc.HeightPressedRatio} {
			if !finite(v) || v < 0 {
				return rmxerr.New(rmxerr.InvalidConfig, "%s key ratios must be finite and not negative: %+v", kind, kc)
			}
		}
	}
	return nil
}

func (c Config) keyConfig(isAccidental bool) KeyConfig {
	if isAccidental {
		return c.Accidental
	}
	return c.Natural
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
