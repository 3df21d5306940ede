package post_service

import (
	"context"
	"errors"
	"log/slog"

	"blog-service/internal/custom_errors"
	model "blog-service/internal/domain/models"
	post_service "blog-service/internal/domain/ports/input/post"
	output "blog-service/internal/domain/ports/output"
)

type PostServiceMetricsDecorator struct {
	service post_service.Service
	log     output.Logger
	metrics output.MetricsProvider
}

func NewPostServiceMetricsDecorator(
	service post_service.Service,
	log output.Logger,
	metrics output.MetricsProvider,
) post_service.Service {
	return &PostServiceMetricsDecorator{
		service: service,
		log:     log,
		metrics: metrics,
	}
}

func (d *PostServiceMetricsDecorator) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error) {
	result, err := d.service.CreatePost(ctx, post)
	if err != nil {
		if !errors.Is(err, custom_errors.ErrPostValidation) {
			d.log.Warn("Post creation failed", slog.String("error", err.Error()))
		}
		d.metrics.IncrementPostOperations("create", false)
		return nil, err
	}

	d.metrics.IncrementPostOperations("create", true)
	return result, nil
}

func (d *PostServiceMetricsDecorator) ListPosts(ctx context.Context) ([]*model.Post, error) {
	posts, err := d.service.ListPosts(ctx)
	d.metrics.IncrementPostOperations("list", err == nil)
	return posts, err
}

func (d *PostServiceMetricsDecorator) Flush(ctx context.Context) error {
	err := d.service.Flush(ctx)
	d.metrics.IncrementPostOperations("flush", err == nil)
	return err
}
