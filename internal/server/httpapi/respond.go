package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/thelogs/shelflife/internal/errs"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// writeErr maps sentinel errors to HTTP statuses. Collaborator failures are
// converted to responses here; nothing propagates uncaught into the mux.
func (s *Server) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, errs.ErrUpstream):
		respondError(w, http.StatusBadGateway, err.Error())
	default:
		s.log.Error("internal error", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
