// Package handlers provides HTTP handlers for the weekly wellness summary.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/aristath/pulse/internal/modules/healthdata"
	"github.com/aristath/pulse/internal/modules/wellness"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// ContentTypeMsgpack is the media type clients send in Accept to get msgpack responses.
const ContentTypeMsgpack = "application/msgpack"

// SummaryProvider computes the weekly summary on demand
type SummaryProvider interface {
	WeeklySummary(ctx context.Context) (wellness.WellnessSummary, error)
}

// Handler handles wellness HTTP requests
type Handler struct {
	service SummaryProvider
	log     zerolog.Logger
}

// NewHandler creates a new wellness handler
func NewHandler(service SummaryProvider, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "wellness").Logger(),
	}
}

// HandleGetSummary handles GET /api/summary
func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.WeeklySummary(r.Context())
	if err != nil {
		status, msg := classifyError(err)
		if status >= http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("Failed to compute weekly summary")
		} else {
			h.log.Warn().Err(err).Msg("Dataset failed validation")
		}
		h.writeError(w, status, msg)
		return
	}

	if acceptsMsgpack(r) {
		h.writeMsgpack(w, http.StatusOK, summary)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// classifyError maps a summary error to a status code and client message.
func classifyError(err error) (int, string) {
	switch {
	case wellness.IsValidationError(err):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, healthdata.ErrSourceNotFound), errors.Is(err, fs.ErrNotExist):
		return http.StatusInternalServerError, "Data source not found."
	default:
		return http.StatusInternalServerError, "Failed to compute weekly summary."
	}
}

func acceptsMsgpack(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if strings.EqualFold(mediaType, ContentTypeMsgpack) {
			return true
		}
	}
	return false
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	// Encode before writing the header so a failure can still become a 500
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to encode response."}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func (h *Handler) writeMsgpack(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", ContentTypeMsgpack)
	w.WriteHeader(status)

	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode msgpack response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
