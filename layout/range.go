package layout

import (
	"math"

	"github.com/rapidmidiex/rmxpiano/rmxerr"
	"github.com/rapidmidiex/rmxpiano/vpiano"
)

// Range is an inclusive span of MIDI numbers.
type Range struct {
	Start int `json:"startNote"`
	End   int `json:"endNote"`
}

// naturalsBefore[c] is the number of natural pitch classes below class c within an octave.
var naturalsBefore = [12]int{0, 1, 1, 2, 2, 3, 4, 4, 5, 5, 6, 6}

// preallocMax bounds the capacity reserved up front for very long ranges.
const preallocMax = 1 << 10

// Validate rejects reversed ranges and ranges whose length does not fit in an int.
func (r Range) Validate() error {
	if r.Start > r.End {
		return rmxerr.New(rmxerr.InvalidRange, "start note %d is above end note %d", r.Start, r.End)
	}
	if d := r.End - r.Start; d < 0 || d == math.MaxInt {
		return rmxerr.New(rmxerr.InvalidRange, "range %d-%d holds more keys than an int can count", r.Start, r.End)
	}
	return nil
}

// Len is the number of keys in a valid range.
func (r Range) Len() int {
	return r.End - r.Start + 1
}

func (r Range) Contains(midi int) bool {
	return midi >= r.Start && midi <= r.End
}

// Notes lists every MIDI number from Start to End, both included.
func (r Range) Notes() ([]int, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	notes := make([]int, 0, min(r.Len(), preallocMax))
	for n := r.Start; n <= r.End; n++ {
		notes = append(notes, n)
		if n == r.End {
			// End may be math.MaxInt.
			break
		}
	}
	return notes, nil
}

// CountNaturalKeys returns how many keys of the range are not accidentals.
func (r Range) CountNaturalKeys() (int, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	start, end := vpiano.Classify(r.Start), vpiano.Classify(r.End)
	count := naturalsPerOctave*(end.Octave-start.Octave) +
		naturalsBefore[vpiano.PitchClass(r.End)] - naturalsBefore[vpiano.PitchClass(r.Start)]
	if !end.IsAccidental {
		count++
	}
	return count, nil
}
