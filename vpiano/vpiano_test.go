package vpiano_test

import (
	"math"
	"testing"

	"github.com/rapidmidiex/rmxpiano/rmxerr"
	"github.com/rapidmidiex/rmxpiano/vpiano"
	"github.com/stretchr/testify/require"
)

func TestMakeOctaveNotes(t *testing.T) {
	got := vpiano.MakeOctaveNotes(vpiano.C4)
	wantNotes := []vpiano.Note{
		{MIDI: 60, KeyBinding: "a", Name: "C", Octave: 4, IsAccidental: false},
		{MIDI: 61, KeyBinding: "w", Name: "Db", Octave: 4, IsAccidental: true},
		{MIDI: 62, KeyBinding: "s", Name: "D", Octave: 4, IsAccidental: false},
		{MIDI: 63, KeyBinding: "e", Name: "Eb", Octave: 4, IsAccidental: true},
		{MIDI: 64, KeyBinding: "d", Name: "E", Octave: 4, IsAccidental: false},
		{MIDI: 65, KeyBinding: "f", Name: "F", Octave: 4, IsAccidental: false},
		{MIDI: 66, KeyBinding: "t", Name: "Gb", Octave: 4, IsAccidental: true},
		{MIDI: 67, KeyBinding: "g", Name: "G", Octave: 4, IsAccidental: false},
		{MIDI: 68, KeyBinding: "y", Name: "Ab", Octave: 4, IsAccidental: true},
		{MIDI: 69, KeyBinding: "h", Name: "A", Octave: 4, IsAccidental: false},
		{MIDI: 70, KeyBinding: "u", Name: "Bb", Octave: 4, IsAccidental: true},
		{MIDI: 71, KeyBinding: "j", Name: "B", Octave: 4, IsAccidental: false},
		{MIDI: 72, KeyBinding: "k", Name: "C", Octave: 5, IsAccidental: false},
		{MIDI: 73, KeyBinding: "o", Name: "Db", Octave: 5, IsAccidental: true},
		{MIDI: 74, KeyBinding: "l", Name: "D", Octave: 5, IsAccidental: false},
		{MIDI: 75, KeyBinding: "p", Name: "Eb", Octave: 5, IsAccidental: true},
		{MIDI: 76, KeyBinding: ";", Name: "E", Octave: 5, IsAccidental: false},
		{MIDI: 77, KeyBinding: "'", Name: "F", Octave: 5, IsAccidental: false},
	}

	require.Len(t, got, len(wantNotes))
	for i, want := range wantNotes {
		require.Equal(t, want, got[i])
	}

	bindings := got.ToBindingMap()
	require.Equal(t, 60, bindings["a"].MIDI)
	require.Equal(t, "k", got.ByMIDI()[72].KeyBinding)
}

func TestClassify(t *testing.T) {
	t.Run("reference octave", func(t *testing.T) {
		require.Equal(t, vpiano.Note{MIDI: 12, Name: "C", Octave: 0}, vpiano.Classify(12))
		require.Equal(t, "C4", vpiano.Classify(60).String())
		require.Equal(t, "A0", vpiano.Classify(21).String())
	})

	t.Run("negative numbers floor into lower octaves", func(t *testing.T) {
		require.Equal(t, vpiano.Note{MIDI: 11, Name: "B", Octave: -1}, vpiano.Classify(11))
		require.Equal(t, vpiano.Note{MIDI: 0, Name: "C", Octave: -1}, vpiano.Classify(0))
		require.Equal(t, vpiano.Note{MIDI: -1, Name: "B", Octave: -2}, vpiano.Classify(-1))
		require.Equal(t, vpiano.Note{MIDI: -11, Name: "Db", Octave: -2, IsAccidental: true}, vpiano.Classify(-11))
		require.Equal(t, vpiano.Note{MIDI: -12, Name: "C", Octave: -2}, vpiano.Classify(-12))
	})

	t.Run("accidentals repeat every octave", func(t *testing.T) {
		for midi := -48; midi < 140; midi++ {
			n := vpiano.Classify(midi)
			next := vpiano.Classify(midi + 12)
			require.Equal(t, n.Name, next.Name)
			require.Equal(t, n.IsAccidental, next.IsAccidental)
			require.Equal(t, n.Octave+1, next.Octave)
		}
	})

	t.Run("five accidentals per octave", func(t *testing.T) {
		accidentals := 0
		for midi := 60; midi < 72; midi++ {
			if vpiano.Classify(midi).IsAccidental {
				accidentals++
			}
		}
		require.Equal(t, 5, accidentals)
	})

	t.Run("extreme values", func(t *testing.T) {
		require.NotPanics(t, func() {
			vpiano.Classify(math.MinInt)
			vpiano.Classify(math.MaxInt)
		})
	})
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"C": "C", "c": "C", "C#": "Db", "Db": "Db", "d#": "Eb", "E#": "F",
		"Cb": "B", "F♯": "Gb", "A#": "Bb", " Bb ": "Bb", "G♭": "Gb",
	}
	for in, want := range cases {
		got, err := vpiano.Normalize(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "H", "C##", "Dbb", "C4"} {
		_, err := vpiano.Normalize(in)
		require.Truef(t, rmxerr.Is(err, rmxerr.UnknownNoteSymbol), "%q: %v", in, err)
	}
}

func TestParseNote(t *testing.T) {
	t.Run("parses scientific pitch notation", func(t *testing.T) {
		cases := map[string]int{
			"C4": 60, "c4": 60, "C#4": 61, "Db4": 61, "A0": 21, "C8": 108,
			"B3": 59, "Cb4": 59, "Bb-1": 10, "C-1": 0, "C-2": -12,
		}
		for in, want := range cases {
			got, err := vpiano.ParseNote(in)
			require.NoError(t, err, in)
			require.Equal(t, want, got, in)
		}
	})

	t.Run("parses MIDI numbers", func(t *testing.T) {
		got, err := vpiano.ParseNote("72")
		require.NoError(t, err)
		require.Equal(t, 72, got)

		got, err = vpiano.ParseNote("-3")
		require.NoError(t, err)
		require.Equal(t, -3, got)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, in := range []string{"", "C", "H4", "C#x", "4C"} {
			_, err := vpiano.ParseNote(in)
			require.Truef(t, rmxerr.Is(err, rmxerr.InvalidNote), "%q: %v", in, err)
		}
	})

	t.Run("round trips through Classify", func(t *testing.T) {
		for midi := -24; midi <= 127; midi++ {
			got, err := vpiano.ParseNote(vpiano.Classify(midi).String())
			require.NoError(t, err)
			require.Equal(t, midi, got)
		}
	})
}

func TestInPianoRange(t *testing.T) {
	require.False(t, vpiano.InPianoRange(20))
	require.True(t, vpiano.InPianoRange(21))
	require.True(t, vpiano.InPianoRange(108))
	require.False(t, vpiano.InPianoRange(109))
}

func TestNames(t *testing.T) {
	require.Equal(t, []string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}, vpiano.Names())
}

func TestPitchClass(t *testing.T) {
	require.Equal(t, 0, vpiano.PitchClass(60))
	require.Equal(t, 11, vpiano.PitchClass(71))
	require.Equal(t, 11, vpiano.PitchClass(-1))
	require.Equal(t, 0, vpiano.PitchClass(-12))
}
