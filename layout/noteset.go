package layout

import "sort"

// NoteSet holds the MIDI numbers of the keys currently held down. The nil set is empty.
type NoteSet map[int]struct{}

func NewNoteSet(notes ...int) NoteSet {
	s := make(NoteSet, len(notes))
	for _, n := range notes {
		s[n] = struct{}{}
	}
	return s
}

func (s NoteSet) Has(midi int) bool {
	_, ok := s[midi]
	return ok
}

func (s NoteSet) Add(midi int) { s[midi] = struct{}{} }

func (s NoteSet) Remove(midi int) { delete(s, midi) }

// Toggle flips the state of midi and reports whether it is now pressed.
func (s NoteSet) Toggle(midi int) bool {
	if s.Has(midi) {
		delete(s, midi)
		return false
	}
	s[midi] = struct{}{}
	return true
}

// Slice returns the members in ascending order.
func (s NoteSet) Slice() []int {
	out := make([]int, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
