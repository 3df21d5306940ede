package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	model "blog-service/internal/domain/models"
	"blog-service/internal/domain/ports/output/store"

	ports "blog-service/internal/domain/ports/output"
)

type PostLister interface {
	List(ctx context.Context) ([]*model.Post, error)
}

type WebhookURLSource interface {
	URL() string
}

// Persister writes the current posts and webhook URL to the store as one snapshot.
// Saves are serialised and the snapshot is taken under the lock, so an older
// state can never overwrite a newer one.
type Persister struct {
	mu      sync.Mutex
	store   store.Store
	posts   PostLister
	webhook WebhookURLSource
	log     ports.Logger
}

func NewPersister(store store.Store, posts PostLister, webhook WebhookURLSource, log ports.Logger) *Persister {
	return &Persister{
		store:   store,
		posts:   posts,
		webhook: webhook,
		log:     log,
	}
}

func (p *Persister) Persist(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	posts, err := p.posts.List(ctx)
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}

	snapshot := &model.Snapshot{
		Posts:      posts,
		WebhookURL: p.webhook.URL(),
	}
	if err := p.store.Save(ctx, snapshot); err != nil {
		return err
	}

	p.log.Debug("Snapshot persisted", slog.Int("posts_count", len(posts)))
	return nil
}
