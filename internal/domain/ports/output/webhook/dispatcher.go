package webhook

import (
	"context"

	model "blog-service/internal/domain/models"
)

//go:generate mockery --name Dispatcher --dir . --output ../../../../../mocks/webhook --outpkg mocks --filename Dispatcher.go
type Dispatcher interface {
	Send(ctx context.Context, payload *model.WebhookPayload) *model.DeliveryResult
	SetURL(url string)
	URL() string
}
