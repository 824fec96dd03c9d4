package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/trenddash/image-pipeline/internal/model"
)

// ProcessStats carries the byte-size statistics gathered while handling
// one processing request. On failure it reports whatever was measured
// before the pipeline stopped.
type ProcessStats struct {
	OriginalSize     int64   `json:"originalSize"`
	ProcessedSize    int64   `json:"processedSize"`
	CompressionRatio float64 `json:"compressionRatio,omitempty"`
	ProcessingTimeMs int64   `json:"processingTimeMs"`
}

// ProcessResponse is the success body of the process endpoint.
type ProcessResponse struct {
	URL    string       `json:"url"`
	Cached bool         `json:"cached"`
	Stats  ProcessStats `json:"stats"`
}

// ErrorResponse is the failure body: machine-readable kind plus the
// underlying message.
type ErrorResponse struct {
	Error   string        `json:"error"`
	Details string        `json:"details,omitempty"`
	Stats   *ProcessStats `json:"stats,omitempty"`
}

// ListResponse is the paginated record-listing body.
type ListResponse struct {
	Images     []*model.ProcessedImage `json:"images"`
	Page       int                     `json:"page"`
	PerPage    int                     `json:"per_page"`
	Count      int                     `json:"count"`
	TotalCount int                     `json:"total_count"`
}

// WriteJSON serialises resp as JSON and writes it to w with the given HTTP status code.
func WriteJSON(w http.ResponseWriter, status int, resp interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("WriteJSON: failed to encode response: %v", err)
	}
}
