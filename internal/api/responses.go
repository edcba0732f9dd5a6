package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	app_errors "zai-proxy/internal/errors"
)

// unauthorizedBody is sent verbatim; clients match on it byte for byte.
const unauthorizedBody = `{"message": "Unauthorized: Access token is missing"}`

// ErrorResponse is the body of 5xx responses. Detail is null unless the
// server runs in debug mode.
type ErrorResponse struct {
	Message string  `json:"message" example:"An internal server error occurred."`
	Detail  *string `json:"detail"`
}

// DetailResponse is the body of 4xx responses other than 401.
type DetailResponse struct {
	Detail string `json:"detail" example:"Model gpt-4 is not allowed. Allowed models are: glm-4.6, glm-4.5"`
}

// StatusResponse is the body of the health endpoints.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// respondWithError maps service errors to HTTP responses. showDetail
// controls whether 5xx bodies include the underlying error text.
func respondWithError(w http.ResponseWriter, err error, showDetail bool) {
	switch {
	case errors.Is(err, app_errors.ErrUnauthorized):
		slog.Warn("Responding with error", "status_code", http.StatusUnauthorized, "internal_error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if _, werr := w.Write([]byte(unauthorizedBody)); werr != nil {
			slog.Error("Failed to write JSON response", "error", werr)
		}
		return

	case errors.Is(err, app_errors.ErrModelNotAllowed):
		respondWithDetail(w, http.StatusBadRequest, trimSentinel(err, app_errors.ErrModelNotAllowed), err)
		return

	case errors.Is(err, app_errors.ErrValidation):
		respondWithDetail(w, http.StatusBadRequest, err.Error(), err)
		return

	case errors.Is(err, app_errors.ErrNotFound):
		respondWithDetail(w, http.StatusNotFound, "The requested resource was not found.", err)
		return
	}

	statusCode := http.StatusInternalServerError
	message := "An internal server error occurred."
	if app_errors.IsUpstream(err) {
		statusCode = http.StatusBadGateway
		message = "Upstream service error"
	}

	slog.Error("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	body := ErrorResponse{Message: message}
	if showDetail {
		detail := err.Error()
		body.Detail = &detail
	}
	respondWithJSON(w, statusCode, body)
}

func respondWithDetail(w http.ResponseWriter, code int, detail string, err error) {
	slog.Warn("Responding with error", "status_code", code, "client_message", detail, "internal_error", err)
	respondWithJSON(w, code, DetailResponse{Detail: detail})
}

// trimSentinel strips the "<sentinel>: " prefix added when wrapping.
func trimSentinel(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

// respondWithJSON is a low-level helper for marshaling a payload to JSON
// and writing it to the http.ResponseWriter with a given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
