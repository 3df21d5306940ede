package webhook_service

import (
	"context"

	model "blog-service/internal/domain/models"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/webhook --outpkg mocks --filename WebhookService.go
type Service interface {
	SetURL(ctx context.Context, url string) error
	GetURL(ctx context.Context) string
	TestWebhook(ctx context.Context) (*model.DeliveryResult, error)
}
