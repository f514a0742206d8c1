package devserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorMessage struct {
	Message string `json:"message"`
}

type errorBody struct {
	Errors []errorMessage `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("write json response", "err", err)
	}
}

// writeErrors writes the {"errors":[{"message":...}]} body read by the
// signup client.
func writeErrors(w http.ResponseWriter, status int, messages []string) {
	body := errorBody{Errors: make([]errorMessage, 0, len(messages))}
	for _, message := range messages {
		body.Errors = append(body.Errors, errorMessage{Message: message})
	}
	writeJSON(w, status, body)
}
