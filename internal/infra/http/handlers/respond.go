package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/obaturn/Property-Managment-Backend/internal/usecase"
)

// APIResponse is the envelope every endpoint returns: a success flag, a
// human-readable message, the payload, and (outside production) the
// underlying error detail.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func writeData(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, APIResponse{Success: true, Message: message, Data: data})
}

// writeError maps the usecase error taxonomy onto HTTP status codes.
// Production responses omit internal error text.
func writeError(w http.ResponseWriter, err error) {
	if de, ok := usecase.AsDomainError(err); ok {
		writeJSON(w, domainStatus(de.Code), APIResponse{
			Success: false,
			Message: de.Message,
			Error:   de.Details,
		})
		return
	}

	resp := APIResponse{Success: false, Message: "internal server error"}
	if os.Getenv("APP_ENV") != "production" {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}

func domainStatus(code string) int {
	switch code {
	case usecase.CodeInvalidInput:
		return http.StatusBadRequest
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeConflict:
		return http.StatusConflict
	case usecase.CodeProviderUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
