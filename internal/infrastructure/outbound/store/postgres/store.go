package postgres_store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"blog-service/internal/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
)

type PgDB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists the snapshot into the posts and webhook_config tables.
type Store struct {
	db      PgDB
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewStore(db PgDB, log ports.Logger, metrics ports.MetricsProvider) *Store {
	return &Store{db: db, log: log, metrics: metrics}
}

func (s *Store) Load(ctx context.Context) (*model.Snapshot, error) {
	start := time.Now()
	s.log.Debug("Loading snapshot from postgres")

	snapshot, err := s.load(ctx)
	s.metrics.RecordStoreOperationDuration("load", time.Since(start))
	if err != nil {
		s.metrics.IncrementStoreOperations("load", false)
		s.log.Error("Error loading snapshot", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrStoreUnavailable, err)
	}

	s.metrics.IncrementStoreOperations("load", true)
	s.log.Info("Data loaded",
		slog.Int("posts_count", len(snapshot.Posts)),
		slog.Bool("webhook_configured", snapshot.WebhookURL != ""))
	return snapshot, nil
}

func (s *Store) load(ctx context.Context) (*model.Snapshot, error) {
	query := `SELECT id, title, content, date FROM posts ORDER BY position, id`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		post := &model.Post{}
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.Date); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	var url string
	err = s.db.QueryRow(ctx, `SELECT url FROM webhook_config WHERE id = 1`).Scan(&url)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("query webhook config: %w", err)
	}

	return &model.Snapshot{Posts: posts, WebhookURL: url}, nil
}

func (s *Store) Save(ctx context.Context, snapshot *model.Snapshot) error {
	start := time.Now()
	err := s.save(ctx, snapshot)
	s.metrics.RecordStoreOperationDuration("save", time.Since(start))
	if err != nil {
		s.metrics.IncrementStoreOperations("save", false)
		s.log.Error("Error saving snapshot", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", custom_errors.ErrPersistence, err)
	}

	s.metrics.IncrementStoreOperations("save", true)
	s.log.Debug("Snapshot saved", slog.Int("posts_count", len(snapshot.Posts)))
	return nil
}

func (s *Store) save(ctx context.Context, snapshot *model.Snapshot) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				s.log.Error("Failed to rollback transaction", slog.String("error", rbErr.Error()))
			}
		}
	}()

	upsertPost := `
		INSERT INTO posts (id, position, title, content, date)
		VALUES (@id, @position, @title, @content, @date)
		ON CONFLICT (id) DO UPDATE
		SET position = EXCLUDED.position,
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			date = EXCLUDED.date`

	ids := make([]int64, 0, len(snapshot.Posts))
	batch := &pgx.Batch{}
	for i, post := range snapshot.Posts {
		ids = append(ids, post.ID)
		batch.Queue(upsertPost, pgx.NamedArgs{
			"id":       post.ID,
			"position": int64(i),
			"title":    post.Title,
			"content":  post.Content,
			"date":     post.Date,
		})
	}
	batch.Queue(`DELETE FROM posts WHERE NOT (id = ANY(@ids))`, pgx.NamedArgs{"ids": ids})
	batch.Queue(`
		INSERT INTO webhook_config (id, url, updated_at)
		VALUES (1, @url, now())
		ON CONFLICT (id) DO UPDATE SET url = EXCLUDED.url, updated_at = EXCLUDED.updated_at`,
		pgx.NamedArgs{"url": snapshot.WebhookURL})

	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if closer, ok := s.db.(interface{ Close() }); ok {
		closer.Close()
		s.log.Info("Postgres pool closed")
	}
	return nil
}
