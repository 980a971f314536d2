// Package http exposes the Espalier engine over a small JSON API.
//
// The adapter is stateless per request: a session's machine is rebuilt from
// its stored snapshot, driven, and snapshotted back. State lives in the
// ports.SessionStore, so any number of API replicas can share a Redis
// backend.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/automaton"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/lexer"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/session"
	"github.com/go-chi/chi/v5"
)

// Server wires the pattern source and session store into HTTP handlers.
type Server struct {
	source   ports.PatternSource
	sessions *session.Manager
	lexer    *lexer.Lexer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a server over the given source and store. The tokenize
// endpoint uses one shared lexer built from every pattern in the source, in
// source order; pass hooks to instrument it.
func NewServer(source ports.PatternSource, store ports.SessionStore, hooks domain.Hooks, opts ...Option) (*Server, error) {
	patterns, err := espalier.Patterns(source)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		source:   source,
		sessions: session.NewManager(store),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(srv)
	}

	srv.lexer, err = lexer.New(patterns, lexer.WithLogger(srv.logger), lexer.WithHooks(hooks))
	if err != nil {
		return nil, err
	}

	return srv, nil
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/patterns", s.listPatterns)
	r.Post("/tokenize", s.tokenize)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.listSessions)
		r.Post("/", s.createSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/step", s.step)
			r.Post("/rollback", s.rollback)
			r.Post("/reset", s.reset)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionView is the wire representation of a stepping session.
type SessionView struct {
	ID       string          `json:"id"`
	Pattern  string          `json:"pattern"`
	Position domain.Position `json:"position"`
	Accepted bool            `json:"accepted"`
	Trapped  bool            `json:"trapped"`
	Depth    int             `json:"depth"`
}

type createSessionRequest struct {
	ID      string `json:"id"`
	Pattern string `json:"pattern"`
}

type stepRequest struct {
	Symbol string `json:"symbol"`
}

type rollbackRequest struct {
	Count int `json:"count"`
}

type tokenizeRequest struct {
	Input string `json:"input"`
}

type tokenizeResponse struct {
	Tokens []domain.Token `json:"tokens"`
}

func (s *Server) listPatterns(w http.ResponseWriter, r *http.Request) {
	names, err := s.source.ListPatterns()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"patterns": names})
}

func (s *Server) tokenize(w http.ResponseWriter, r *http.Request) {
	var req tokenizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tokens, err := s.lexer.Scan(r.Context(), req.Input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if tokens == nil {
		tokens = []domain.Token{}
	}
	s.writeJSON(w, http.StatusOK, tokenizeResponse{Tokens: tokens})
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"sessions": ids})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" || req.Pattern == "" {
		http.Error(w, "id and pattern are required", http.StatusBadRequest)
		return
	}

	// The pattern must exist before the ID is reserved.
	if _, err := s.source.GetPattern(req.Pattern); err != nil {
		s.writeError(w, r, err)
		return
	}

	snap, err := s.sessions.LoadOrStart(r.Context(), req.ID, req.Pattern)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.view(req.ID, snap)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, view)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	snap, err := s.sessions.Load(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.view(id, snap)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) step(w http.ResponseWriter, r *http.Request) {
	var req stepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	symbol, size := utf8.DecodeRuneInString(req.Symbol)
	if symbol == utf8.RuneError || size != len(req.Symbol) {
		http.Error(w, "symbol must be exactly one character", http.StatusBadRequest)
		return
	}

	s.drive(w, r, func(m *automaton.Machine) error {
		_, err := m.Step(symbol)
		return err
	})
}

func (s *Server) rollback(w http.ResponseWriter, r *http.Request) {
	var req rollbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Count <= 0 {
		req.Count = 1
	}

	s.drive(w, r, func(m *automaton.Machine) error {
		for i := 0; i < req.Count; i++ {
			m.Rollback()
		}
		return nil
	})
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	s.drive(w, r, func(m *automaton.Machine) error {
		m.Reset()
		return nil
	})
}

// drive runs a machine operation against a stored session: load snapshot,
// rebuild the machine, apply, snapshot back. All under the session lock.
func (s *Server) drive(w http.ResponseWriter, r *http.Request, op func(*automaton.Machine) error) {
	id := chi.URLParam(r, "sessionID")

	var view SessionView
	_, err := s.sessions.Update(r.Context(), id, func(snap *domain.Snapshot) error {
		m, err := s.rebuild(snap)
		if err != nil {
			return err
		}
		if err := op(m); err != nil {
			return err
		}

		*snap = *m.Snapshot()
		view = s.viewOf(id, snap, m)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) rebuild(snap *domain.Snapshot) (*automaton.Machine, error) {
	p, err := s.source.GetPattern(snap.Pattern)
	if err != nil {
		return nil, fmt.Errorf("session pattern %q: %w", snap.Pattern, err)
	}

	m := automaton.FromPattern(p)
	m.Restore(snap)
	return m, nil
}

func (s *Server) view(id string, snap *domain.Snapshot) (SessionView, error) {
	m, err := s.rebuild(snap)
	if err != nil {
		return SessionView{}, err
	}
	return s.viewOf(id, snap, m), nil
}

func (s *Server) viewOf(id string, snap *domain.Snapshot, m *automaton.Machine) SessionView {
	return SessionView{
		ID:       id,
		Pattern:  snap.Pattern,
		Position: snap.Position,
		Accepted: m.Accepted(),
		Trapped:  m.Trapped(),
		Depth:    m.Depth(),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var ambErr *domain.AmbiguityError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrPatternNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNoMatch):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &ambErr):
		// An NFA table is a deployment bug, not a client mistake.
		status = http.StatusInternalServerError
	case errors.Is(err, context.Canceled):
		status = 499 // client closed request
	}

	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	http.Error(w, err.Error(), status)
}
