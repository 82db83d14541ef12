package utils

import (
	"encoding/json"
	"net/http"

	"PATHFINDER_BACK-END/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a simple {message} error body
func WriteErrorResponse(w http.ResponseWriter, status int, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Message: message})
}

// WriteValidationErrors writes a 400 {title, errors} body with per-field messages
func WriteValidationErrors(w http.ResponseWriter, fieldErrors []dto.FieldError) {
	WriteJSONResponse(w, http.StatusBadRequest, dto.ValidationErrorResponse{
		Title:  "Validation Error",
		Errors: fieldErrors,
	})
}

// DecodeJSONRequest decodes the request body into dst. On failure it writes
// a 400 response and returns the error, so callers can just return.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return err
	}
	return nil
}
