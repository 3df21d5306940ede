package file_store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"blog-service/internal/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store keeps the snapshot as two pretty-printed JSON documents in one directory.
type Store struct {
	dir               string
	postsPath         string
	webhookConfigPath string
	log               ports.Logger
	metrics           ports.MetricsProvider
}

func NewStore(dir, postsFile, webhookConfigFile string, log ports.Logger, metrics ports.MetricsProvider) *Store {
	return &Store{
		dir:               dir,
		postsPath:         filepath.Join(dir, postsFile),
		webhookConfigPath: filepath.Join(dir, webhookConfigFile),
		log:               log,
		metrics:           metrics,
	}
}

func (s *Store) Load(ctx context.Context) (*model.Snapshot, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordStoreOperationDuration("load", time.Since(start))
	}()

	if err := s.ensureDir(); err != nil {
		s.log.Warn("Failed to create data directory", slog.String("dir", s.dir), slog.String("error", err.Error()))
	}

	snapshot := &model.Snapshot{Posts: []*model.Post{}}

	var posts []*model.Post
	if s.readDocument(s.postsPath, &posts) && posts != nil {
		snapshot.Posts = posts
	}

	var webhookConfig model.WebhookConfig
	if s.readDocument(s.webhookConfigPath, &webhookConfig) {
		snapshot.WebhookURL = webhookConfig.URL
	}

	s.metrics.IncrementStoreOperations("load", true)
	s.log.Info("Data loaded",
		slog.String("dir", s.dir),
		slog.Int("posts_count", len(snapshot.Posts)),
		slog.Bool("webhook_configured", snapshot.WebhookURL != ""))
	return snapshot, nil
}

// readDocument reports whether path held valid JSON. A missing file is normal on first start.
func (s *Store) readDocument(path string, dest any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("Document not found, starting empty", slog.String("path", path))
		} else {
			s.log.Warn("Failed to read document", slog.String("path", path), slog.String("error", err.Error()))
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.log.Warn("Document is not valid JSON, starting empty", slog.String("path", path), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (s *Store) Save(ctx context.Context, snapshot *model.Snapshot) error {
	start := time.Now()
	err := s.save(snapshot)
	s.metrics.RecordStoreOperationDuration("save", time.Since(start))
	if err != nil {
		s.metrics.IncrementStoreOperations("save", false)
		s.log.Error("Error saving data", slog.String("dir", s.dir), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", custom_errors.ErrPersistence, err)
	}

	s.metrics.IncrementStoreOperations("save", true)
	s.log.Debug("Data saved", slog.String("dir", s.dir), slog.Int("posts_count", len(snapshot.Posts)))
	return nil
}

func (s *Store) save(snapshot *model.Snapshot) error {
	if err := s.ensureDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	posts := snapshot.Posts
	if posts == nil {
		posts = []*model.Post{}
	}
	if err := writeJSONAtomic(s.postsPath, posts); err != nil {
		return fmt.Errorf("write posts: %w", err)
	}

	if err := writeJSONAtomic(s.webhookConfigPath, model.WebhookConfig{URL: snapshot.WebhookURL}); err != nil {
		return fmt.Errorf("write webhook config: %w", err)
	}
	return nil
}

func (s *Store) ensureDir() error {
	return os.MkdirAll(s.dir, dirPerm)
}

func (s *Store) Close() error {
	return nil
}

// writeJSONAtomic writes to a sibling temp file and renames it over path,
// so a crash mid-write never leaves a truncated document behind.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
