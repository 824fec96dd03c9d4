package handler

import (
	"net/http"
	"strconv"

	"github.com/trenddash/image-pipeline/internal/api"
	"github.com/trenddash/image-pipeline/internal/model"
)

// ListRecords handles GET /v1/images -- list cached processed-image
// records, newest first, optionally filtered by ?type=.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	page := 1
	perPage := 100

	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		if pp, err := strconv.Atoi(v); err == nil && pp > 0 {
			if pp > 1000 {
				pp = 1000
			}
			perPage = pp
		}
	}

	imageType := r.URL.Query().Get("type")

	recs, total, err := h.DB.ListProcessedImages(imageType, page, perPage)
	if err != nil {
		api.Internal(w, "failed to list records")
		return
	}

	// Ensure non-nil slice for JSON serialisation.
	if recs == nil {
		recs = []*model.ProcessedImage{}
	}

	api.WriteJSON(w, http.StatusOK, api.ListResponse{
		Images:     recs,
		Page:       page,
		PerPage:    perPage,
		Count:      len(recs),
		TotalCount: total,
	})
}

// GetStats handles GET /v1/images/stats.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.DB.Stats()
	if err != nil {
		api.Internal(w, "failed to aggregate stats")
		return
	}

	saved := stats.OriginalBytes - stats.ProcessedBytes
	result := map[string]interface{}{
		"count":          stats.Count,
		"originalBytes":  stats.OriginalBytes,
		"processedBytes": stats.ProcessedBytes,
		"savedBytes":     saved,
	}
	api.WriteJSON(w, http.StatusOK, result)
}
