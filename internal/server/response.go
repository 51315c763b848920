package server

import (
	"encoding/json"
	"net/http"
)

// submitResponse is the wire contract of the submission endpoint.
type submitResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Cooldown      bool   `json:"cooldown,omitempty"`
	DaysRemaining int    `json:"daysRemaining,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeAccepted(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, submitResponse{
		Success: true,
		Message: "Assessment received",
	})
}

func writeRejected(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, submitResponse{
		Success: false,
		Message: message,
	})
}

func writeThrottled(w http.ResponseWriter, message string, daysRemaining int) {
	writeJSON(w, http.StatusTooManyRequests, submitResponse{
		Success:       false,
		Message:       message,
		Cooldown:      true,
		DaysRemaining: daysRemaining,
	})
}
