package post_service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"blog-service/internal/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
	"blog-service/internal/domain/ports/output/events"
	post_repository "blog-service/internal/domain/ports/output/post"
	"blog-service/internal/domain/ports/output/webhook"
)

//go:generate mockery --name Persister --dir . --output ../../../../mocks/persistence --outpkg mocks --filename Persister.go
type Persister interface {
	Persist(ctx context.Context) error
}

type PostService struct {
	postRepo    post_repository.Repository
	persister   Persister
	broadcaster events.Broadcaster
	dispatcher  webhook.Dispatcher
	log         ports.Logger
	now         func() time.Time
}

func NewPostService(
	postRepo post_repository.Repository,
	persister Persister,
	broadcaster events.Broadcaster,
	dispatcher webhook.Dispatcher,
	log ports.Logger,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		persister:   persister,
		broadcaster: broadcaster,
		dispatcher:  dispatcher,
		log:         log,
		now:         time.Now,
	}
}

func (s *PostService) ListPosts(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// CreatePost appends the post, then persists, broadcasts and dispatches the webhook
// in that order. Those three steps are best-effort: a failure is logged and the
// post stays created.
func (s *PostService) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error) {
	if post == nil || post.Title == "" || post.Content == "" {
		s.log.Debug("Post validation failed")
		return nil, custom_errors.ErrPostValidation
	}

	date := model.FormatDate(s.now())
	if post.Date != nil && *post.Date != "" {
		date = *post.Date
	}

	created, err := s.postRepo.Create(ctx, &model.Post{
		Title:   post.Title,
		Content: post.Content,
		Date:    date,
	})
	if err != nil {
		s.log.Error("Failed to create post", slog.String("error", err.Error()))
		return nil, fmt.Errorf("create post: %w", err)
	}

	// The post exists now; side effects must outlive a client that hangs up.
	sideCtx := context.WithoutCancel(ctx)

	if err := s.persister.Persist(sideCtx); err != nil {
		s.log.Error("Post created but not persisted",
			slog.Int64("post_id", created.ID),
			slog.String("error", err.Error()))
	}

	delivered := s.broadcaster.Broadcast(sideCtx, model.Event{
		Name: model.EventNewPost,
		Data: map[string]any{"postId": created.ID},
	})
	s.log.Debug("New post broadcast", slog.Int64("post_id", created.ID), slog.Int("subscribers", delivered))

	if s.dispatcher.URL() != "" {
		result := s.dispatcher.Send(sideCtx, &model.WebhookPayload{
			Event: model.EventNewPost,
			Data: model.NewPostWebhookData{
				ID:    created.ID,
				Title: created.Title,
				Date:  created.Date,
			},
		})
		if !result.Success {
			s.log.Warn("New post webhook not delivered",
				slog.Int64("post_id", created.ID),
				slog.String("error", result.Error))
		}
	}

	s.log.Info("Post created", slog.Int64("post_id", created.ID), slog.String("title", created.Title))
	return created, nil
}

// Flush persists the current state; called on shutdown.
func (s *PostService) Flush(ctx context.Context) error {
	if err := s.persister.Persist(ctx); err != nil {
		s.log.Error("Failed to flush data", slog.String("error", err.Error()))
		return err
	}
	return nil
}
