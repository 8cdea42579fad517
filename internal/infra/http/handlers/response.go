package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/xavierca1/leadpulse/internal/logger"
	"github.com/xavierca1/leadpulse/internal/usecase"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Message: message, Code: code})
}

// writeUseCaseError maps DomainError to 400 or 404 and everything else to 500.
func writeUseCaseError(w http.ResponseWriter, log logger.Logger, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		status := http.StatusBadRequest
		if strings.HasSuffix(de.Code, "_NOT_FOUND") {
			status = http.StatusNotFound
		}
		writeErrorResponse(w, status, de.Code, de.Message)
		return
	}

	code := "INTERNAL_ERROR"
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		code = te.Code
	}
	log.Error("request failed", "code", code, "error", err)
	writeErrorResponse(w, http.StatusInternalServerError, code, "internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return false
	}
	return true
}
