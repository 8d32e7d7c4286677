// Package httpapi exposes the journaling backend over HTTP/JSON.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/thelogs/shelflife/internal/search"
	"github.com/thelogs/shelflife/internal/service"
	"github.com/thelogs/shelflife/internal/upload"
)

// Server wires services into HTTP handlers.
type Server struct {
	entries service.EntryService
	tabs    service.TabService
	search  *search.Client
	uploads upload.Store
	log     *zap.Logger

	uploadDir     string
	uploadBaseURL string
}

// Option tweaks optional server wiring.
type Option func(*Server)

// WithUploadDir serves the upload directory at baseURL so disk-hosted images
// resolve.
func WithUploadDir(dir, baseURL string) Option {
	return func(s *Server) {
		s.uploadDir = dir
		s.uploadBaseURL = baseURL
	}
}

// New constructs an HTTP server with injected collaborators.
func New(entries service.EntryService, tabs service.TabService, sc *search.Client, uploads upload.Store, log *zap.Logger, opts ...Option) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{entries: entries, tabs: tabs, search: sc, uploads: uploads, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(Recover(s.log), Logging(s.log))

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api.HandleFunc("/entries", s.handleCreateEntry).Methods(http.MethodPost)
	api.HandleFunc("/entries", s.handleListEntries).Methods(http.MethodGet)
	api.HandleFunc("/entries/{id}", s.handleGetEntry).Methods(http.MethodGet)
	api.HandleFunc("/entries/{id}", s.handleUpdateEntry).Methods(http.MethodPut)
	api.HandleFunc("/entries/{id}", s.handleDeleteEntry).Methods(http.MethodDelete)

	api.HandleFunc("/tabs", s.handleCreateTab).Methods(http.MethodPost)
	api.HandleFunc("/tabs", s.handleListTabs).Methods(http.MethodGet)
	api.HandleFunc("/tabs/{id}", s.handleGetTab).Methods(http.MethodGet)
	api.HandleFunc("/tabs/{id}", s.handleDeleteTab).Methods(http.MethodDelete)
	api.HandleFunc("/tabs/{id}/color", s.handleSetTabColor).Methods(http.MethodPut)
	api.HandleFunc("/tabs/{id}/canvas", s.handleReplaceCanvas).Methods(http.MethodPut)

	api.HandleFunc("/uploads", s.handleUpload).Methods(http.MethodPost)

	api.HandleFunc("/search/books", s.handleSearch(s.search.Books)).Methods(http.MethodGet)
	api.HandleFunc("/search/movies", s.handleSearch(s.search.Movies)).Methods(http.MethodGet)
	api.HandleFunc("/search/music", s.handleSearch(s.search.Music)).Methods(http.MethodGet)
	api.HandleFunc("/search/anime", s.handleSearch(s.search.Anime)).Methods(http.MethodGet)
	api.HandleFunc("/search/manga", s.handleSearch(s.search.Manga)).Methods(http.MethodGet)

	if s.uploadDir != "" {
		prefix := s.uploadBaseURL
		if prefix == "" {
			prefix = "/uploads"
		}
		r.PathPrefix(prefix + "/").Handler(
			http.StripPrefix(prefix+"/", http.FileServer(http.Dir(s.uploadDir))))
	}
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
