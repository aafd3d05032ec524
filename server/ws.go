package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rapidmidiex/rmxpiano/layout"
	"github.com/rapidmidiex/rmxpiano/rmxerr"
	"github.com/rapidmidiex/rmxpiano/wsmsg"
)

// handleWS streams layouts to one client. The client reports key presses and releases,
// and every change is answered with the full layout. Pressed state lives and dies with
// the connection.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	kb, width, err := s.keyboardFor(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.log.Warn("upgrade", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(readLimit)

	log := s.log.With("remote", r.RemoteAddr)
	log.Debug("client connected", "start", kb.Range().Start, "end", kb.Range().End)

	pressed := layout.NewNoteSet()
	if err := sendLayout(conn, kb, pressed, width); err != nil {
		log.Warn("send layout", "err", err)
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("read", "err", err)
			}
			log.Debug("client disconnected")
			return
		}

		if err := apply(data, kb.Range(), pressed); err != nil {
			log.Debug("bad message", "err", err)
			if err := send(conn, wsmsg.ERROR, errorMsg(err)); err != nil {
				log.Warn("send error", "err", err)
				return
			}
			continue
		}

		if err := sendLayout(conn, kb, pressed, width); err != nil {
			log.Warn("send layout", "err", err)
			return
		}
	}
}

// apply updates the pressed set for one client message. Notes outside rng are refused,
// so the set never outgrows the keyboard.
func apply(data []byte, rng layout.Range, pressed layout.NoteSet) error {
	var message wsmsg.Envelope
	if err := json.Unmarshal(data, &message); err != nil {
		return rmxerr.Wrap(rmxerr.InvalidMessage, err, "unmarshal Envelope")
	}

	switch message.Typ {
	case wsmsg.RESET:
		for n := range pressed {
			pressed.Remove(n)
		}
		return nil
	case wsmsg.PRESS, wsmsg.RELEASE:
		var note wsmsg.NoteMsg
		if err := message.Unwrap(&note); err != nil {
			return rmxerr.Wrap(rmxerr.InvalidMessage, err, "unmarshal NoteMsg")
		}
		if !rng.Contains(note.Number) {
			return rmxerr.New(rmxerr.InvalidMessage, "note %d is outside %d-%d", note.Number, rng.Start, rng.End)
		}
		if message.Typ == wsmsg.PRESS {
			pressed.Add(note.Number)
		} else {
			pressed.Remove(note.Number)
		}
		return nil
	default:
		return rmxerr.New(rmxerr.InvalidMessage, "unexpected message type: %s", message.Typ)
	}
}

func sendLayout(conn *websocket.Conn, kb *layout.Keyboard, pressed layout.NoteSet, width float64) error {
	return send(conn, wsmsg.LAYOUT, wsmsg.NewLayoutMsg(kb, pressed, width))
}

func send(conn *websocket.Conn, typ wsmsg.MsgType, payload any) error {
	envelope, err := wsmsg.NewEnvelope(typ, payload)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := conn.WriteJSON(envelope); err != nil {
		return fmt.Errorf("writeJSON: %w", err)
	}
	return nil
}
