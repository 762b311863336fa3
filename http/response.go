package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"credit-pricing/domain"
	"credit-pricing/repository"
)

// maxBodyBytes caps request bodies; a full batch fits comfortably.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeJSON encodes into a buffer first so a failed encode does not leave a
// half-written 200 behind.
func writeJSON(log zerolog.Logger, w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

func writeError(log zerolog.Logger, w http.ResponseWriter, status int, message string) {
	writeJSON(log, w, status, errorResponse{Error: message})
}

// writeServiceError maps service errors to status codes.
func writeServiceError(log zerolog.Logger, w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(log, w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Field: verr.Field})
	case errors.Is(err, repository.ErrProposalNotFound):
		writeError(log, w, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(log, w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON checks the content type and decodes the body into dst. It writes
// the error response itself and reports whether decoding succeeded.
func decodeJSON(log zerolog.Logger, w http.ResponseWriter, r *http.Request, dst any) bool {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		writeError(log, w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		log.Debug().Err(err).Msg("error decoding request body")
		writeError(log, w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
