package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/mux"

	"github.com/thelogs/shelflife/internal/model"
)

// maxUploadBytes bounds the request body for image uploads (10 MiB).
const maxUploadBytes = 10 << 20

// --- Entries ---

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var e model.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	created, err := s.entries.Create(r.Context(), e)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	tabID := uuid.Nil
	if raw := r.URL.Query().Get("tab"); raw != "" {
		id, err := uuid.FromString(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid tab id")
			return
		}
		tabID = id
	}
	entries, err := s.entries.List(r.Context(), tabID)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := s.entries.Get(r.Context(), id)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var e model.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	e.ID = id
	updated, err := s.entries.Update(r.Context(), e)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.entries.Delete(r.Context(), id); err != nil {
		s.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Tabs ---

func (s *Server) handleCreateTab(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label string          `json:"label"`
		Type  model.EntryType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	tab, err := s.tabs.Create(r.Context(), req.Label, req.Type)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tab)
}

func (s *Server) handleListTabs(w http.ResponseWriter, r *http.Request) {
	tabs, err := s.tabs.List(r.Context())
	if err != nil {
		s.writeErr(w, err)
		return
	}
	if tabs == nil {
		tabs = []model.Tab{}
	}
	respondJSON(w, http.StatusOK, tabs)
}

func (s *Server) handleGetTab(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	tab, err := s.tabs.Get(r.Context(), id)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tab)
}

func (s *Server) handleDeleteTab(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.tabs.Delete(r.Context(), id); err != nil {
		s.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetTabColor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := s.tabs.SetColor(r.Context(), id, req.Color); err != nil {
		s.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReplaceCanvas(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var images []model.CanvasImage
	if err := json.NewDecoder(r.Body).Decode(&images); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := s.tabs.ReplaceCanvasImages(r.Context(), id, images); err != nil {
		s.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Uploads ---

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil || len(data) == 0 {
		respondError(w, http.StatusBadRequest, "empty upload body")
		return
	}
	url, err := s.uploads.Upload(r.Context(), data, uuid.Must(uuid.NewV4()).String())
	if err != nil {
		s.writeErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// --- Search ---

func (s *Server) handleSearch(fn func(context.Context, string) ([]model.SearchResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "" {
			respondError(w, http.StatusBadRequest, "missing query")
			return
		}
		results, err := fn(r.Context(), q)
		if err != nil {
			s.writeErr(w, err)
			return
		}
		if results == nil {
			results = []model.SearchResult{}
		}
		respondJSON(w, http.StatusOK, results)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.FromString(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
