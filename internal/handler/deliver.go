package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// DeliverObject handles GET /cdn/* -- serves a stored object from the
// bucket. This is the route processed URLs resolve to.
func (h *Handler) DeliverObject(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		http.Error(w, "object not found", http.StatusNotFound)
		return
	}

	rc, contentType, err := h.Bucket.Open(key)
	if err != nil {
		http.Error(w, "object not found", http.StatusNotFound)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		log.Printf("DeliverObject: failed to write response: %v", err)
	}
}
