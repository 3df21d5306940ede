package http_handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"blog-service/internal/custom_errors"
	ports "blog-service/internal/domain/ports/output"
)

const (
	msgInvalidBody     = "Invalid request body"
	msgBodyTooLarge    = "Request body too large"
	msgInternalError   = "An internal error occurred"
	msgContentRequired = "Title and content are required"
	msgURLRequired     = "Webhook URL is required"
	msgURLInvalid      = "Webhook URL must be an absolute http or https URL"
)

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

var errBodyTooLarge = errors.New("request body too large")

func writeJSON(w http.ResponseWriter, log ports.Logger, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, log ports.Logger, statusCode int, message string) {
	writeJSON(w, log, statusCode, errorResponse{Error: message})
}

// decodeJSON reads at most maxBytes of the body into dst. An empty body leaves dst
// zero-valued, so missing fields are reported by validation.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return fmt.Errorf("%w: %w", custom_errors.ErrInvalidRequest, err)
	}
	return nil
}

func writeDecodeError(w http.ResponseWriter, log ports.Logger, err error) {
	if errors.Is(err, errBodyTooLarge) {
		writeError(w, log, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	writeError(w, log, http.StatusBadRequest, msgInvalidBody)
}
