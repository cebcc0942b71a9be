// Package httputil holds the small helpers shared by every HTTP handler:
// JSON response writing and the per-request CSP nonce plumbing.
package httputil

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the envelope every JSON error response uses.
type ErrorBody struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorBody{Error: message})
}
