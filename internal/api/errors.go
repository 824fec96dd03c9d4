package api

import "net/http"

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, details string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Details: details})
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, details string) {
	WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Details: details})
}

// Internal writes a 500 error response.
func Internal(w http.ResponseWriter, details string) {
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Details: details})
}
