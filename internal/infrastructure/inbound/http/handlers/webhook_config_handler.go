package http_handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"blog-service/internal/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
)

type WebhookConfigurer interface {
	SetURL(ctx context.Context, url string) error
	GetURL(ctx context.Context) string
}

type WebhookConfigHandler struct {
	webhookService WebhookConfigurer
	validate       *validator.Validate
	log            ports.Logger
	maxBodyBytes   int64
}

func NewWebhookConfigHandler(webhookService WebhookConfigurer, validate *validator.Validate, log ports.Logger, maxBodyBytes int64) *WebhookConfigHandler {
	return &WebhookConfigHandler{
		webhookService: webhookService,
		validate:       validate,
		log:            log,
		maxBodyBytes:   maxBodyBytes,
	}
}

type WebhookConfigRequestInternal struct {
	URL string `validate:"required,http_url"`
}

func (h *WebhookConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, model.WebhookConfig{URL: h.webhookService.GetURL(r.Context())})
}

func (h *WebhookConfigHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req model.WebhookConfig
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		h.log.Debug("SetWebhookConfig body rejected", slog.String("error", err.Error()))
		writeDecodeError(w, h.log, err)
		return
	}

	validationReq := &WebhookConfigRequestInternal{URL: req.URL}
	if err := h.validate.Struct(validationReq); err != nil {
		h.log.Debug("SetWebhookConfig validation failed", slog.String("error", err.Error()))
		if req.URL == "" {
			writeError(w, h.log, http.StatusBadRequest, msgURLRequired)
			return
		}
		writeError(w, h.log, http.StatusBadRequest, msgURLInvalid)
		return
	}

	if err := h.webhookService.SetURL(r.Context(), req.URL); err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrWebhookURLRequired):
			writeError(w, h.log, http.StatusBadRequest, msgURLRequired)
		case errors.Is(err, custom_errors.ErrWebhookURLInvalid):
			writeError(w, h.log, http.StatusBadRequest, msgURLInvalid)
		default:
			h.log.Error("Failed to save webhook configuration", slog.String("error", err.Error()))
			writeError(w, h.log, http.StatusInternalServerError, "Failed to save webhook configuration")
		}
		return
	}

	writeJSON(w, h.log, http.StatusOK, statusResponse{Success: true, Message: "Webhook configuration saved"})
}
