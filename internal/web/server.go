// Package web serves the credential database over HTTP: a small HTML
// index plus a JSON API for listing, fetching, creating and deleting
// logins. The server holds no state of its own; every handler works
// against the shared in-memory database.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/needlesslygrim/Locket/pkg/store"
)

const shutdownTimeout = 10 * time.Second

// Server exposes a Database over HTTP.
type Server struct {
	db  *store.Database
	log *zap.Logger
}

// New returns a Server backed by db, logging through logger.
func New(db *store.Database, logger *zap.Logger) *Server {
	return &Server{db: db, log: logger}
}

// Handler builds the router for the web interface.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Get("/logins", s.handleList)
		r.Post("/logins", s.handleCreate)
		r.Get("/logins/{name}", s.handleGet)
		r.Delete("/logins/{name}", s.handleDelete)
	})
	return r
}

// Serve runs the web interface on localhost until ctx is cancelled,
// then shuts down gracefully. The database is only served to the local
// machine; remote access is out of scope.
func Serve(ctx context.Context, logger *zap.Logger, db *store.Database, port uint16) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("localhost", strconv.Itoa(int(port))),
		Handler:           New(db, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("serving credential database", zap.String("addr", srv.Addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("web: shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web: serve: %w", err)
		}
		return nil
	case err := <-errCh:
		return fmt.Errorf("web: listen on %s: %w", srv.Addr, err)
	}
}

// loginSummary is the redacted view used by the collection endpoint.
// Secrets are only revealed by fetching a login by name.
type loginSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type createRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Secret   string `json:"secret"`
	URL      string `json:"url"`
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Locket</title>
<style>body{font-family:sans-serif;max-width:40rem;margin:2rem auto}</style>
</head>
<body>
<h1>Locket</h1>
<p>{{len .}} login(s) stored.</p>
<ul>
{{- range .}}
<li><strong>{{.Name}}</strong> ({{.Username}})</li>
{{- end}}
</ul>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, s.db.List()); err != nil {
		s.log.Error("render index", zap.Error(err))
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	logins := s.db.List()
	summaries := make([]loginSummary, 0, len(logins))
	for _, l := range logins {
		summaries = append(summaries, loginSummary{
			ID:        l.ID,
			Name:      l.Name,
			Username:  l.Username,
			URL:       l.URL,
			CreatedAt: l.CreatedAt,
		})
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

// pathName extracts the login name from the route, undoing any URL
// escaping so names with spaces round-trip through the API.
func pathName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	name := pathName(r)
	login, ok := s.db.Get(name)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("no login named %q", name))
		return
	}
	s.writeJSON(w, http.StatusOK, login)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	login := store.NewLogin(req.Name, req.Username, req.Secret, req.URL)
	if err := s.db.Add(login); err != nil {
		switch {
		case errors.Is(err, store.ErrEmptyName):
			s.writeError(w, http.StatusBadRequest, "login name must not be empty")
		case errors.Is(err, store.ErrDuplicateName):
			s.writeError(w, http.StatusConflict, fmt.Sprintf("a login named %q already exists", login.Name))
		default:
			s.log.Error("add login", zap.Error(err))
			s.writeError(w, http.StatusInternalServerError, "failed to store login")
		}
		return
	}
	s.writeJSON(w, http.StatusCreated, login)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	name := pathName(r)
	if _, err := s.db.Remove(name); err != nil {
		if errors.Is(err, store.ErrLoginNotFound) {
			s.writeError(w, http.StatusNotFound, fmt.Sprintf("no login named %q", name))
			return
		}
		s.log.Error("remove login", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to remove login")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
