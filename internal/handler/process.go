package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/trenddash/image-pipeline/internal/api"
	"github.com/trenddash/image-pipeline/internal/pipeline"
)

// ProcessImage handles POST /v1/images/process -- fetch a remote image,
// transcode it under the policy for its type, store it, and return the
// public URL. Repeated requests for an already-processed URL answer from
// the cache.
func (h *Handler) ProcessImage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.New().String()
	w.Header().Set("X-Request-Id", requestID)

	var body struct {
		ImageURL string `json:"imageUrl"`
		Type     string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.BadRequest(w, "invalid JSON body: "+err.Error())
		return
	}
	if body.ImageURL == "" || body.Type == "" {
		api.BadRequest(w, "missing required fields: imageUrl, type")
		return
	}

	res, err := h.Pipeline.EnsureProcessed(r.Context(), body.ImageURL, body.Type)
	if err != nil {
		kind := pipeline.Kind(err)
		stats := &api.ProcessStats{ProcessingTimeMs: time.Since(start).Milliseconds()}
		var pe *pipeline.Error
		if errors.As(err, &pe) {
			stats.OriginalSize = pe.OriginalSize
			stats.ProcessedSize = pe.ProcessedSize
		}

		slog.Error("image processing failed",
			"request_id", requestID,
			"url", body.ImageURL,
			"type", body.Type,
			"kind", kind.String(),
			"error", err,
		)

		api.WriteJSON(w, statusForKind(kind), api.ErrorResponse{
			Error:   kind.String(),
			Details: err.Error(),
			Stats:   stats,
		})
		return
	}

	stats := api.ProcessStats{
		OriginalSize:     res.OriginalSize,
		ProcessedSize:    res.ProcessedSize,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}
	if res.ProcessedSize > 0 {
		stats.CompressionRatio = float64(res.OriginalSize) / float64(res.ProcessedSize)
	}

	api.WriteJSON(w, http.StatusOK, api.ProcessResponse{
		URL:    res.ProcessedURL,
		Cached: res.Cached,
		Stats:  stats,
	})
}

// statusForKind maps a pipeline error kind to an HTTP status code.
func statusForKind(kind pipeline.ErrorKind) int {
	switch kind {
	case pipeline.KindInvalidType:
		return http.StatusBadRequest
	case pipeline.KindFetch, pipeline.KindNetwork:
		return http.StatusBadGateway
	case pipeline.KindTimeout:
		return http.StatusGatewayTimeout
	case pipeline.KindDecode:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
