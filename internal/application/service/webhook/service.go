package webhook_service

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"blog-service/internal/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
	"blog-service/internal/domain/ports/output/webhook"
)

const testMessage = "This is a test webhook"

type Persister interface {
	Persist(ctx context.Context) error
}

type WebhookService struct {
	dispatcher webhook.Dispatcher
	persister  Persister
	log        ports.Logger
	now        func() time.Time
}

func NewWebhookService(dispatcher webhook.Dispatcher, persister Persister, log ports.Logger) *WebhookService {
	return &WebhookService{
		dispatcher: dispatcher,
		persister:  persister,
		log:        log,
		now:        time.Now,
	}
}

// SetURL replaces the configured webhook URL. The new value is effective for the
// next delivery even if persisting it fails.
func (s *WebhookService) SetURL(ctx context.Context, rawURL string) error {
	if rawURL == "" {
		return custom_errors.ErrWebhookURLRequired
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return custom_errors.ErrWebhookURLInvalid
	}

	s.dispatcher.SetURL(rawURL)
	s.log.Info("Webhook URL configured", slog.String("url", rawURL))

	if err := s.persister.Persist(context.WithoutCancel(ctx)); err != nil {
		s.log.Error("Webhook URL configured but not persisted", slog.String("error", err.Error()))
	}
	return nil
}

func (s *WebhookService) GetURL(ctx context.Context) string {
	return s.dispatcher.URL()
}

func (s *WebhookService) TestWebhook(ctx context.Context) (*model.DeliveryResult, error) {
	if s.dispatcher.URL() == "" {
		return nil, custom_errors.ErrWebhookNotConfigured
	}

	result := s.dispatcher.Send(ctx, &model.WebhookPayload{
		Event: model.EventTest,
		Data: model.TestWebhookData{
			Message:   testMessage,
			Timestamp: model.FormatDate(s.now()),
		},
	})
	if result == nil {
		result = &model.DeliveryResult{Success: false, Error: custom_errors.ErrWebhookDelivery.Error()}
	}
	if !result.Success {
		s.log.Warn("Test webhook failed", slog.String("error", result.Error))
	}
	return result, nil
}
