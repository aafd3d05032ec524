// Package wsmsg contains the message types exchanged with a browser keyboard.
package wsmsg

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/rapidmidiex/rmxpiano/layout"
)

type (
	MsgType int

	Envelope struct {
		// Message identifier
		ID uuid.UUID `json:"id"`
		// LayoutMsg | NoteMsg | ErrorMsg
		Typ MsgType `json:"type"`
		// Actual message data.
		Payload json.RawMessage `json:"payload"`
	}

	// NoteMsg is sent by the client when a key goes down or up.
	NoteMsg struct {
		// MIDI Note # in "C4 Convention", C4 = 60.
		Number int `json:"number"`
	}

	// LayoutMsg is the keyboard as the client should draw it.
	LayoutMsg struct {
		Range layout.Range `json:"range"`
		// CSS lengths, ex: "800px" or "100%".
		Width   string   `json:"width"`
		Height  string   `json:"height"`
		Pressed []int    `json:"pressed"`
		Keys    []KeyMsg `json:"keys"`
	}

	KeyMsg struct {
		layout.Geometry
		Style layout.Style `json:"style"`
	}

	ErrorMsg struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
)

const (
	LAYOUT MsgType = iota
	PRESS
	RELEASE
	RESET
	ERROR
)

var msgTypeNames = map[MsgType]string{
	LAYOUT:  "layout",
	PRESS:   "press",
	RELEASE: "release",
	RESET:   "reset",
	ERROR:   "error",
}

// NewEnvelope wraps payload in an envelope with a fresh ID.
func NewEnvelope(typ MsgType, payload any) (Envelope, error) {
	e := Envelope{ID: uuid.New(), Typ: typ}
	if err := e.SetPayload(payload); err != nil {
		return Envelope{}, err
	}
	return e, nil
}

// NewLayoutMsg describes every key of kb for a given pressed state and fixed width.
func NewLayoutMsg(kb *layout.Keyboard, pressed layout.NoteSet, width float64) LayoutMsg {
	w, h := kb.Dimensions(width).CSS()
	geoms := kb.Keys(pressed)
	keys := make([]KeyMsg, 0, len(geoms))
	for _, g := range geoms {
		keys = append(keys, KeyMsg{Geometry: g, Style: g.Style()})
	}
	return LayoutMsg{
		Range:   kb.Range(),
		Width:   w,
		Height:  h,
		Pressed: pressed.Slice(),
		Keys:    keys,
	}
}

func (e *Envelope) SetPayload(payload any) error {
	p, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	e.Payload = p
	return nil
}

func (e *Envelope) Unwrap(msg any) error {
	return json.Unmarshal(e.Payload, msg)
}

func (t MsgType) String() string {
	if name, ok := msgTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MsgType(%d)", int(t))
}

func (t *MsgType) UnmarshalJSON(data []byte) error {
	var rawType string
	err := json.Unmarshal(data, &rawType)
	if err != nil {
		return err
	}

	for typ, name := range msgTypeNames {
		if name == rawType {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("unknown type: %s", rawType)
}

func (t MsgType) MarshalJSON() ([]byte, error) {
	name, ok := msgTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown MsgTyp value: %d", t)
	}
	return json.Marshal(name)
}
