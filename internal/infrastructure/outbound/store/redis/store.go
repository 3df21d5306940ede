package redis_store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"blog-service/internal/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
)

const (
	postsKey         = "posts"
	webhookConfigKey = "webhook-config"
)

// Store mirrors the file layout: one JSON document per key.
type Store struct {
	client    *Client
	keyPrefix string
	log       ports.Logger
	metrics   ports.MetricsProvider
}

func NewStore(client *Client, keyPrefix string, log ports.Logger, metrics ports.MetricsProvider) *Store {
	return &Store{
		client:    client,
		keyPrefix: keyPrefix,
		log:       log,
		metrics:   metrics,
	}
}

func (s *Store) Load(ctx context.Context) (*model.Snapshot, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordStoreOperationDuration("load", time.Since(start))
	}()

	snapshot := &model.Snapshot{Posts: []*model.Post{}}

	var posts []*model.Post
	ok, err := s.readDocument(ctx, s.postsKey(), &posts)
	if err != nil {
		s.metrics.IncrementStoreOperations("load", false)
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrStoreUnavailable, err)
	}
	if ok && posts != nil {
		snapshot.Posts = posts
	}

	var webhookConfig model.WebhookConfig
	ok, err = s.readDocument(ctx, s.webhookConfigKey(), &webhookConfig)
	if err != nil {
		s.metrics.IncrementStoreOperations("load", false)
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrStoreUnavailable, err)
	}
	if ok {
		snapshot.WebhookURL = webhookConfig.URL
	}

	s.metrics.IncrementStoreOperations("load", true)
	s.log.Info("Data loaded",
		slog.String("key_prefix", s.keyPrefix),
		slog.Int("posts_count", len(snapshot.Posts)),
		slog.Bool("webhook_configured", snapshot.WebhookURL != ""))
	return snapshot, nil
}

// readDocument returns (false, nil) for missing or unparsable documents; only transport errors surface.
func (s *Store) readDocument(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, errKeyNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.log.Warn("Document is not valid JSON, starting empty", slog.String("key", key), slog.String("error", err.Error()))
		return false, nil
	}
	return true, nil
}

func (s *Store) Save(ctx context.Context, snapshot *model.Snapshot) error {
	start := time.Now()
	err := s.save(ctx, snapshot)
	s.metrics.RecordStoreOperationDuration("save", time.Since(start))
	if err != nil {
		s.metrics.IncrementStoreOperations("save", false)
		s.log.Error("Error saving data", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", custom_errors.ErrPersistence, err)
	}

	s.metrics.IncrementStoreOperations("save", true)
	return nil
}

func (s *Store) save(ctx context.Context, snapshot *model.Snapshot) error {
	posts := snapshot.Posts
	if posts == nil {
		posts = []*model.Post{}
	}
	postsData, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal posts: %w", err)
	}

	configData, err := json.MarshalIndent(model.WebhookConfig{URL: snapshot.WebhookURL}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal webhook config: %w", err)
	}

	return s.client.SetAll(ctx, map[string][]byte{
		s.postsKey():         postsData,
		s.webhookConfigKey(): configData,
	})
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) postsKey() string {
	return s.keyPrefix + postsKey
}

func (s *Store) webhookConfigKey() string {
	return s.keyPrefix + webhookConfigKey
}
