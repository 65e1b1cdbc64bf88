package httputils

import (
	"encoding/json"
	"log"
	"net/http"

	"gupshup/chat_backend/internal/pkg/apperr"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func ResponseError(w http.ResponseWriter, errorCode int, errorMessage string) {
	ResponseJSON(w, errorCode, ErrorResponse{
		Message: errorMessage,
	})
}

// ResponseAppError переводит доменную ошибку в статус и конверт.
func ResponseAppError(w http.ResponseWriter, err error) {
	ResponseError(w, apperr.StatusCode(err), err.Error())
}

func ResponseJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
