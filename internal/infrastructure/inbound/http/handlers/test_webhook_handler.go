package http_handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"blog-service/internal/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
)

type WebhookTester interface {
	TestWebhook(ctx context.Context) (*model.DeliveryResult, error)
}

type TestWebhookHandler struct {
	webhookService WebhookTester
	log            ports.Logger
}

func NewTestWebhookHandler(webhookService WebhookTester, log ports.Logger) *TestWebhookHandler {
	return &TestWebhookHandler{
		webhookService: webhookService,
		log:            log,
	}
}

func (h *TestWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result, err := h.webhookService.TestWebhook(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrWebhookNotConfigured):
			writeJSON(w, h.log, http.StatusBadRequest, statusResponse{Success: false, Message: "No webhook URL configured"})
		default:
			h.log.Error("Failed to test webhook", slog.String("error", err.Error()))
			writeJSON(w, h.log, http.StatusInternalServerError, statusResponse{Success: false, Message: "Error: failed to test webhook"})
		}
		return
	}

	if !result.Success {
		writeJSON(w, h.log, http.StatusOK, statusResponse{Success: false, Message: "Webhook test failed: " + result.Error})
		return
	}
	writeJSON(w, h.log, http.StatusOK, statusResponse{Success: true, Message: "Webhook test successful"})
}
