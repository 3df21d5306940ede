package memory

import (
	"context"
	"log/slog"
	"sync"

	"blog-service/internal/domain/idgen"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
)

// PostRepository is the append-only, insertion-ordered post sequence.
type PostRepository struct {
	log   ports.Logger
	mu    sync.RWMutex
	posts []*model.Post
	ids   *idgen.Generator
}

// NewPostRepository seeds the sequence with previously persisted posts.
func NewPostRepository(log ports.Logger, ids *idgen.Generator, seed []*model.Post) *PostRepository {
	posts := make([]*model.Post, 0, len(seed))
	for _, post := range seed {
		if post == nil {
			continue
		}
		postCopy := *post
		posts = append(posts, &postCopy)
		ids.Observe(post.ID)
	}

	return &PostRepository{
		log:   log,
		posts: posts,
		ids:   ids,
	}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	newPost := &model.Post{
		ID:      p.ids.Next(),
		Title:   post.Title,
		Content: post.Content,
		Date:    post.Date,
	}
	p.posts = append(p.posts, newPost)

	p.log.Debug("Post appended", slog.Int64("id", newPost.ID), slog.Int("posts_count", len(p.posts)))

	result := *newPost
	return &result, nil
}

func (p *PostRepository) List(ctx context.Context) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]*model.Post, 0, len(p.posts))
	for _, post := range p.posts {
		postCopy := *post
		result = append(result, &postCopy)
	}
	return result, nil
}
