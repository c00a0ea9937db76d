package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// ErrorResponse is the uniform error envelope. Kind is machine-readable,
// Message human-readable; Errors is populated for validation failures only.
// Internal details never appear here.
type ErrorResponse struct {
	Kind      string       `json:"error"`
	Message   string       `json:"message"`
	Errors    []FieldError `json:"errors,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

func RespondWithError(w http.ResponseWriter, code int, kind, message string) {
	RespondWithJSON(w, code, ErrorResponse{Kind: kind, Message: message, Timestamp: time.Now().UTC()})
}

// RespondWithDomainError maps a domain error to its status, kind and body.
// Anything outside the taxonomy becomes a 500 with a fixed message so that
// internals never leak to the client.
func RespondWithDomainError(w http.ResponseWriter, err error) {
	code := HTTPStatusFromError(err)
	kind := KindFromError(err)

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		RespondWithJSON(w, code, ErrorResponse{
			Kind:      kind,
			Message:   "validation failed",
			Errors:    vErr.Fields,
			Timestamp: time.Now().UTC(),
		})
		return
	}

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = ErrInternalServer.Error()
	}
	RespondWithError(w, code, kind, message)
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "internal", "message": "failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
