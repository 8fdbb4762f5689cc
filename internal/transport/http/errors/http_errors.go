package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServerError is the body of every unexpected failure.
type ServerError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Error      bool   `json:"error"`
}

func Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteRaw writes an already encoded JSON body unchanged. An empty body
// sends the status alone.
func WriteRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	if len(body) == 0 {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func WriteInternal(w http.ResponseWriter, path string) {
	Write(w, http.StatusInternalServerError, ServerError{
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal server error",
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Path:       path,
		Error:      true,
	})
}
