// Package response provides shared JSON response helpers for HTTP handlers.
package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON shape of every failure response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ResultBody is the JSON shape of a successful publish, carrying the remote
// store's write result verbatim.
type ResultBody struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
}

// JSON writes a JSON-encoded payload with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Result writes a 200 response embedding the store's write result.
func Result(w http.ResponseWriter, result json.RawMessage) {
	JSON(w, http.StatusOK, ResultBody{Success: true, Result: result})
}

// Error writes an error response with the given status and message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Error: message})
}

// BadRequest writes a 400 response.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// MethodNotAllowed writes a 405 response.
func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, http.StatusMethodNotAllowed, "method not allowed")
}

// ServerError writes a 500 response.
func ServerError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}

// UploadFailure writes a 500 response with the generic upload error and the
// upstream failure detail.
func UploadFailure(w http.ResponseWriter, detail string) {
	JSON(w, http.StatusInternalServerError, ErrorBody{Error: "Upload failed", Message: detail})
}
