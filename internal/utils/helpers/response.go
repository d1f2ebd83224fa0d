package helpers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse: единый формат ошибки API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// JSON пишет тело как есть, без обёртки.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, status int, errMsg string) {
	JSON(w, status, ErrorResponse{Error: errMsg})
}

func ErrorDetails(w http.ResponseWriter, status int, errMsg, details string) {
	JSON(w, status, ErrorResponse{Error: errMsg, Details: details})
}
