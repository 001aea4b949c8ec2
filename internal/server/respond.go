package server

import (
	"encoding/json"
	"log"
	"net/http"
)

type errorResponse struct {
	Error         string   `json:"error"`
	Message       string   `json:"message,omitempty"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}
