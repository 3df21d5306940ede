package store

import (
	"context"

	model "blog-service/internal/domain/models"
)

//go:generate mockery --name Store --dir . --output ../../../../../mocks/store --outpkg mocks --filename Store.go
type Store interface {
	// Load returns the last saved snapshot. Missing or unreadable documents come back empty.
	Load(ctx context.Context) (*model.Snapshot, error)
	Save(ctx context.Context, snapshot *model.Snapshot) error
	Close() error
}
