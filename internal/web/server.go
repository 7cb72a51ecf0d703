// Package web serves the kanban board UI and the ticket JSON API.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmwen/minpmt/internal/config"
	"github.com/cmwen/minpmt/internal/store"
	"github.com/cmwen/minpmt/internal/ticket"
	"github.com/cmwen/minpmt/internal/validate"
)

//go:embed static
var staticFS embed.FS

// Server hosts the HTTP API and the embedded board UI.
type Server struct {
	addr string
	cfg  config.Config
	st   *store.Store
	log  *slog.Logger
}

// NewServer creates a web server for the given store. The server does not
// listen until ListenAndServe is called.
func NewServer(addr string, cfg config.Config, st *store.Store) *Server {
	return &Server{
		addr: addr,
		cfg:  cfg,
		st:   st,
		log:  slog.Default(),
	}
}

// Handler builds the HTTP handler: JSON API under /api, the embedded board
// at /, and a health endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/tickets", s.handleList)
	mux.HandleFunc("POST /api/tickets", s.handleCreate)
	mux.HandleFunc("GET /api/tickets/{id}", s.handleGet)
	mux.HandleFunc("PATCH /api/tickets/{id}/status", s.handleUpdateStatus)
	mux.HandleFunc("PATCH /api/tickets/{id}", s.handleUpdateFields)
	mux.HandleFunc("DELETE /api/tickets/{id}", s.handleDelete)
	mux.HandleFunc("GET /api/config", s.handleConfig)
	mux.HandleFunc("GET /", s.handleIndex)

	return s.logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)

		return
	}

	index, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "missing UI assets", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(index)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	filters := ticket.Filters{
		Status:   r.URL.Query().Get("status"),
		Priority: r.URL.Query().Get("priority"),
	}

	if filters.Priority != "" && !ticket.IsValidPriority(filters.Priority) {
		writeError(w, http.StatusBadRequest, "invalid priority filter")

		return
	}

	tickets, err := s.st.List(r.Context(), filters)
	if err != nil {
		s.internalError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, ticket.Views(tickets))
}

// createPayload is the POST /api/tickets body.
type createPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Labels      []string `json:"labels"`
	Assignee    string   `json:"assignee"`
	Due         string   `json:"due"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createPayload

	if !decodeBody(w, r, &payload) {
		return
	}

	in := ticket.CreateInput{
		Title:       payload.Title,
		Description: payload.Description,
		Status:      payload.Status,
		Priority:    payload.Priority,
		Labels:      payload.Labels,
		Assignee:    payload.Assignee,
		Due:         payload.Due,
	}

	validateErr := validate.Create(s.cfg, in)
	if validateErr != nil {
		writeValidationError(w, validateErr)

		return
	}

	created, err := s.st.Create(r.Context(), in)
	if err != nil {
		s.internalError(w, err)

		return
	}

	writeJSON(w, http.StatusCreated, created.View())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	t, err := s.st.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.internalError(w, err)

		return
	}

	if t == nil {
		writeError(w, http.StatusNotFound, "not found")

		return
	}

	writeJSON(w, http.StatusOK, t.View())
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}

	if !decodeBody(w, r, &payload) {
		return
	}

	validateErr := validate.Status(s.cfg, payload.Status)
	if validateErr != nil {
		writeValidationError(w, validateErr)

		return
	}

	err := s.st.UpdateStatus(r.Context(), r.PathValue("id"), payload.Status)
	if err != nil {
		s.storeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// updatePayload is the PATCH /api/tickets/{id} body. Pointer fields
// distinguish "absent" from "set to empty".
type updatePayload struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Priority    *string  `json:"priority"`
	Labels      []string `json:"labels"`
	Assignee    *string  `json:"assignee"`
	Due         *string  `json:"due"`
}

func (s *Server) handleUpdateFields(w http.ResponseWriter, r *http.Request) {
	var payload updatePayload

	if !decodeBody(w, r, &payload) {
		return
	}

	patch := ticket.Patch{
		Title:       payload.Title,
		Description: payload.Description,
		Status:      payload.Status,
		Priority:    payload.Priority,
		Labels:      payload.Labels,
		Assignee:    payload.Assignee,
		Due:         payload.Due,
	}

	validateErr := validate.Update(s.cfg, patch)
	if validateErr != nil {
		writeValidationError(w, validateErr)

		return
	}

	updated, err := s.st.UpdateFields(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.storeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, updated.View())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := s.st.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		s.storeError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg)
}

// storeError maps store failures to HTTP: not-found to 404, anything else
// to 500.
func (s *Server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")

		return
	}

	s.internalError(w, err)
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.log.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("http request",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	decoder := json.NewDecoder(r.Body)

	err := decoder.Decode(v)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")

		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	_ = encoder.Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeValidationError reports every violated constraint, mirroring the
// shape error-aware clients expect: an error plus per-field issues.
func writeValidationError(w http.ResponseWriter, err error) {
	var verr *validate.Error
	if !errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, err.Error())

		return
	}

	type issue struct {
		Field   string `json:"field"`
		Rule    string `json:"rule"`
		Message string `json:"message"`
	}

	issues := make([]issue, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		issues = append(issues, issue{Field: v.Field, Rule: v.Rule, Message: v.Message})
	}

	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "invalid input",
		"issues": issues,
	})
}
