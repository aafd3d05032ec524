// Package server exposes keyboard layouts to browser clients over HTTP and websockets.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/rapidmidiex/rmxpiano/layout"
	"github.com/rapidmidiex/rmxpiano/rmxerr"
	"github.com/rapidmidiex/rmxpiano/vpiano"
	"github.com/rapidmidiex/rmxpiano/wsmsg"
)

// DefaultMaxKeys is the largest range served when Options.MaxKeys is unset.
const DefaultMaxKeys = 128

const (
	cacheSize       = 256
	shutdownTimeout = 10 * time.Second
	writeWait       = 10 * time.Second
	// Largest client message, a note envelope is well under 256 bytes.
	readLimit = 4096
)

type (
	Options struct {
		// Used when a request does not name a range or width.
		Range  layout.Range
		Width  float64
		Sizing layout.Config
		// Longest range a request may ask for, DefaultMaxKeys when zero or less.
		MaxKeys int
		Logger  *log.Logger
	}

	Server struct {
		opts     Options
		cache    *layout.Cache
		log      *log.Logger
		upgrader websocket.Upgrader
		router   chi.Router
	}
)

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.MaxKeys <= 0 {
		opts.MaxKeys = DefaultMaxKeys
	}
	s := &Server{
		opts:  opts,
		cache: layout.NewCache(cacheSize),
		log:   opts.Logger,
		upgrader: websocket.Upgrader{
			// The layout is public and read only.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/layout", s.handleLayout)
	r.Get("/ws", s.handleWS)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleLayout answers GET /layout?start=C4&end=C5&width=800&pressed=60,64.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	kb, width, err := s.keyboardFor(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	pressed, err := parsePressed(r.URL.Query().Get("pressed"), kb.Range())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, wsmsg.NewLayoutMsg(kb, pressed, width))
}

func (s *Server) keyboardFor(r *http.Request) (*layout.Keyboard, float64, error) {
	q := r.URL.Query()
	rng := s.opts.Range
	if v := q.Get("start"); v != "" {
		n, err := vpiano.ParseNote(v)
		if err != nil {
			return nil, 0, err
		}
		rng.Start = n
	}
	if v := q.Get("end"); v != "" {
		n, err := vpiano.ParseNote(v)
		if err != nil {
			return nil, 0, err
		}
		rng.End = n
	}

	width := s.opts.Width
	if v := q.Get("width"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, 0, rmxerr.Wrap(rmxerr.InvalidConfig, err, "width %q", v)
		}
		if err := layout.ValidateWidth(f); err != nil {
			return nil, 0, err
		}
		width = f
	}

	if err := rng.Validate(); err != nil {
		return nil, 0, err
	}
	if rng.Len() > s.opts.MaxKeys {
		return nil, 0, rmxerr.New(rmxerr.InvalidRange, "range of %d keys is above the limit of %d", rng.Len(), s.opts.MaxKeys)
	}

	kb, err := s.cache.Keyboard(rng, s.opts.Sizing)
	if err != nil {
		return nil, 0, err
	}
	return kb, width, nil
}

func parsePressed(v string, rng layout.Range) (layout.NoteSet, error) {
	pressed := layout.NewNoteSet()
	if v == "" {
		return pressed, nil
	}
	for _, field := range strings.Split(v, ",") {
		n, err := vpiano.ParseNote(field)
		if err != nil {
			return nil, err
		}
		if !rng.Contains(n) {
			return nil, rmxerr.New(rmxerr.InvalidNote, "pressed note %d is outside %d-%d", n, rng.Start, rng.End)
		}
		pressed.Add(n)
	}
	return pressed, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.log.Debug("bad request", "err", err)
	s.writeJSON(w, http.StatusBadRequest, errorMsg(err))
}

func errorMsg(err error) wsmsg.ErrorMsg {
	return wsmsg.ErrorMsg{
		Code:    string(rmxerr.GetCode(err)),
		Message: rmxerr.UserMessage(err),
	}
}
