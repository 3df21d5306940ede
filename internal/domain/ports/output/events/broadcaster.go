package events

import (
	"context"

	model "blog-service/internal/domain/models"
)

//go:generate mockery --name Broadcaster --dir . --output ../../../../../mocks/events --outpkg mocks --filename Broadcaster.go
type Broadcaster interface {
	// Broadcast pushes the event to every currently open subscriber and reports how many received it.
	Broadcast(ctx context.Context, event model.Event) int
}
