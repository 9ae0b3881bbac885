package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/ciclo/internal/domain"
	chmw "github.com/go-chi/chi/v5/middleware"
)

type ErrorResponse struct { // TypeGen: ErrorResponse
	BaseResponse
	Error   string    `json:"error"`
	Details *[]string `json:"details,omitempty"`
	Code    *string   `json:"error_code,omitempty"`
	Link    *string   `json:"error_link,omitempty"`
}

type BaseResponse struct { // TypeGen: DefaultResponse
	Ok bool `json:"ok"`
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithDomainError maps a service error onto a status code
func respondWithDomainError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	var code string
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, message = http.StatusBadRequest, "invalid_input", err.Error()
	case errors.Is(err, domain.ErrSourceTooLarge):
		status, code, message = http.StatusRequestEntityTooLarge, "source_too_large", "Source exceeds the configured size limit"
	case errors.Is(err, domain.ErrSyntax):
		status, code, message = http.StatusUnprocessableEntity, "syntax_error", err.Error()
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrAuditLogNotFound):
		status, code, message = http.StatusNotFound, "not_found", "Not found"
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed", "operation", operation, "error", err, "requestID", chmw.GetReqID(r.Context()))
	}

	resp := ErrorResponse{Error: message}
	if code != "" {
		resp.Code = &code
	}
	respondWithJSON(w, status, resp)
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	// Sets content type header
	w.Header().Set("Content-Type", "application/json")

	// Sets the HTTP status code
	w.WriteHeader(code)

	// Encodes the response
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// If encoding fails, logs the error and sends a plain text response
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
