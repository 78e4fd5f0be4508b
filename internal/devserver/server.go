// Package devserver is a small reference backend speaking the notes wire
// protocol over SQLite. It exists so the client can be tried end to end
// (and integration-tested) without a real deployment. It serves both path
// conventions the client knows about.
package devserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"noted-cli/internal/model"
)

type Server struct {
	store  *Store
	logger *slog.Logger
}

func NewServer(store *Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: store, logger: logger}
}

// Handler builds the router. The same resource is mounted at /notes (the
// primary convention) and /api/notes (the namespaced one), mirroring the
// deployments the client is designed to tolerate.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	for _, prefix := range []string{"/notes", "/api/notes"} {
		r.Route(prefix, func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Post("/", s.handleCreate)
			r.Put("/{id}", s.handleUpdate)
			r.Delete("/{id}", s.handleDelete)
		})
	}
	return r
}

type notePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	notes, err := s.store.ListNotes(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	// Object form on purpose: exercises the client's shape tolerance.
	s.writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var p notePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}
	if strings.TrimSpace(p.Title) == "" {
		p.Title = "Untitled"
	}
	n, err := s.store.CreateNote(r.Context(), p.Title, p.Content)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, n)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var p notePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}
	n, found, err := s.store.UpdateNote(r.Context(), id, p.Title, p.Content)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !found {
		s.writeJSON(w, http.StatusNotFound, map[string]any{"error": "note not found"})
		return
	}
	s.writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	found, err := s.store.DeleteNote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !found {
		s.writeJSON(w, http.StatusNotFound, map[string]any{"error": "note not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	s.writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
}
