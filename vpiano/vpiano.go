package vpiano

import (
	"strconv"
	"strings"

	"github.com/rapidmidiex/rmxpiano/rmxerr"
)

type (
	Note struct {
		// MIDI note number, based on C4=60
		MIDI int
		// Name of the note, ex: "C", "Gb"
		Name string
		// Octave index, C0=12. Notes below 12 fall in negative octaves.
		Octave int
		// Denotes if note is sharp/flat ie. "black" key.
		IsAccidental bool
		// qwerty keyboard key binding.
		KeyBinding string
	}

	Notes []Note

	NoteKeyMap map[string]Note

	Octave int
)

const (
	Cneg2 Octave = iota - 2
	Cneg1
	C0
	C1
	C2
	C3
	C4
	C5
	C6
	C7
)

const (
	// MIDI number for C0
	midiC0    = 12
	octaveLen = 12

	LowestPianoKey  = 21  // A0
	HighestPianoKey = 108 // C8
)

var noteNames = [octaveLen]struct {
	name         string
	isAccidental bool
}{
	{name: "C", isAccidental: false},
	{name: "Db", isAccidental: true},
	{name: "D", isAccidental: false},
	{name: "Eb", isAccidental: true},
	{name: "E", isAccidental: false},
	{name: "F", isAccidental: false},
	{name: "Gb", isAccidental: true},
	{name: "G", isAccidental: false},
	{name: "Ab", isAccidental: true},
	{name: "A", isAccidental: false},
	{name: "Bb", isAccidental: true},
	{name: "B", isAccidental: false},
}

// Pitch class of each natural letter, counted from C.
var letterClass = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// qwerty keys ordered to allow for fingering similar to a real piano.
var qwertyKeys = []string{"a", "w", "s", "e", "d", "f", "t", "g", "y", "h", "u", "j", "k", "o", "l", "p", ";", "'"}

// Classify returns the octave, name and accidental flag of any MIDI number, including
// negative ones. Octaves use floor division, so 11 is B in octave -1.
func Classify(midi int) Note {
	class, octave := midi%octaveLen, midi/octaveLen
	if class < 0 {
		class += octaveLen
		octave--
	}
	octave -= midiC0 / octaveLen
	n := noteNames[class]

	return Note{
		MIDI:         midi,
		Name:         n.name,
		Octave:       octave,
		IsAccidental: n.isAccidental,
	}
}

// PitchClass returns the position of the note within its octave, 0 for C up to 11 for B.
func PitchClass(midi int) int {
	class := midi % octaveLen
	if class < 0 {
		class += octaveLen
	}
	return class
}

// String returns the note in scientific pitch notation, ex: "C4", "Bb-1".
func (n Note) String() string {
	return n.Name + strconv.Itoa(n.Octave)
}

// Names returns the twelve note names in pitch class order, starting at C.
func Names() []string {
	names := make([]string, 0, octaveLen)
	for _, n := range noteNames {
		names = append(names, n.name)
	}
	return names
}

// Normalize maps a note symbol such as "c#", "Db" or "E" onto the spelling used by
// Classify. Sharps are respelled as the equivalent flat.
func Normalize(symbol string) (string, error) {
	class, rest, ok := parseLetter(strings.TrimSpace(symbol))
	if !ok || rest != "" {
		return "", rmxerr.New(rmxerr.UnknownNoteSymbol, "unknown note symbol %q", symbol)
	}
	class %= octaveLen
	if class < 0 {
		class += octaveLen
	}
	return noteNames[class].name, nil
}

// ParseNote reads a MIDI number ("60", "-3") or a note in scientific pitch notation
// ("C4", "f#3", "Bb-1").
func ParseNote(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	class, rest, ok := parseLetter(s)
	if !ok || rest == "" {
		return 0, rmxerr.New(rmxerr.InvalidNote, "cannot parse note %q", s)
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, rmxerr.Wrap(rmxerr.InvalidNote, err, "cannot parse octave of %q", s)
	}
	return (octave+midiC0/octaveLen)*octaveLen + class, nil
}

// parseLetter consumes a note letter and an optional accidental and returns the pitch
// class relative to C, which may be -1 (Cb) or 12 (B#).
func parseLetter(s string) (int, string, bool) {
	if s == "" {
		return 0, "", false
	}
	class, ok := letterClass[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, "", false
	}
	rest := s[1:]
	switch {
	case strings.HasPrefix(rest, "#"):
		class, rest = class+1, rest[1:]
	case strings.HasPrefix(rest, "♯"):
		class, rest = class+1, strings.TrimPrefix(rest, "♯")
	case strings.HasPrefix(rest, "b"):
		class, rest = class-1, rest[1:]
	case strings.HasPrefix(rest, "♭"):
		class, rest = class-1, strings.TrimPrefix(rest, "♭")
	}
	return class, rest, true
}

// MakeOctaveNotes creates list of piano note, MIDI #, qwerty keyboard bindings given an octave name, for example "C4". The keybindings start a C, using the home row for naturals and q-row for accidentals, in an attempt to map close to actual piano fingerings.
func MakeOctaveNotes(octave Octave) Notes {
	return MakeNotes(midiC0 + octaveLen*int(octave))
}

// MakeNotes binds the qwerty keys to consecutive MIDI numbers beginning at start.
// The home row only lines up with the naturals when start is a C.
func MakeNotes(start int) Notes {
	notes := make(Notes, 0, len(qwertyKeys))
	for i, kb := range qwertyKeys {
		note := Classify(start + i)
		note.KeyBinding = kb
		notes = append(notes, note)
	}
	return notes
}

func (notes Notes) ToBindingMap() NoteKeyMap {
	nMap := make(NoteKeyMap, len(notes))
	for _, n := range notes {
		nMap[n.KeyBinding] = n
	}
	return nMap
}

// ByMIDI indexes the bindings by MIDI number.
func (notes Notes) ByMIDI() map[int]Note {
	m := make(map[int]Note, len(notes))
	for _, n := range notes {
		m[n.MIDI] = n
	}
	return m
}

// InPianoRange reports whether the MIDI number is a key on an 88 key piano.
func InPianoRange(midiNum int) bool {
	return midiNum >= LowestPianoKey && midiNum <= HighestPianoKey
}
