package utils

import (
	"encoding/json"
	"net/http"

	"hr_interview_analysis/models"
)

// WriteJSON writes data as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteDetail writes an error response of the form {"detail": "..."}.
func WriteDetail(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, models.ErrorResponse{Detail: detail})
}
