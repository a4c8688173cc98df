package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// RespondError writes a standardized error response to the HTTP response writer
func RespondError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   status,
		Message: MessageFor(status),
		Detail:  detail,
	})
}

// RespondBadRequest writes a 400 for malformed request shapes
func RespondBadRequest(w http.ResponseWriter, detail string) {
	RespondError(w, http.StatusBadRequest, detail)
}

// RespondNotFound writes a not found error response
func RespondNotFound(w http.ResponseWriter, detail string) {
	RespondError(w, http.StatusNotFound, detail)
}

// RespondUnprocessable writes a 422 for well-formed but semantically invalid requests
func RespondUnprocessable(w http.ResponseWriter, detail string) {
	RespondError(w, http.StatusUnprocessableEntity, detail)
}

// RespondMethodNotAllowed writes a 405
func RespondMethodNotAllowed(w http.ResponseWriter) {
	RespondError(w, http.StatusMethodNotAllowed, "")
}

// RespondInternalError writes an internal server error response. The cause is
// logged by the caller and never echoed to the client.
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "")
}

// RespondServiceUnavailable writes a service unavailable error response
func RespondServiceUnavailable(w http.ResponseWriter, detail string) {
	RespondError(w, http.StatusServiceUnavailable, detail)
}
