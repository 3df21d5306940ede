package file_store_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-service/internal/custom_errors"
	model "blog-service/internal/domain/models"
	"blog-service/internal/infrastructure/logger"
	"blog-service/internal/infrastructure/outbound/metrics/prometheus"
	file_store "blog-service/internal/infrastructure/outbound/store/file"
)

func setupFileStore(t *testing.T) (*file_store.Store, string) {
	dir := filepath.Join(t.TempDir(), "data")
	store := file_store.NewStore(dir, "posts.json", "webhook-config.json", logger.New("test"), prometheus.NewPrometheusMetricsProvider())
	return store, dir
}

func TestStore_LoadEmpty(t *testing.T) {
	store, dir := setupFileStore(t)

	snapshot, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, snapshot.Posts)
	assert.Empty(t, snapshot.Posts)
	assert.Empty(t, snapshot.WebhookURL)
	assert.DirExists(t, dir)
}

func TestStore_SaveThenLoad(t *testing.T) {
	store, dir := setupFileStore(t)
	ctx := context.Background()

	want := &model.Snapshot{
		Posts: []*model.Post{
			{ID: 1700000000001, Title: "First", Content: "One", Date: "2026-01-01T00:00:00.000Z"},
			{ID: 1700000000002, Title: "Second", Content: "Two", Date: "2026-01-02T00:00:00.000Z"},
		},
		WebhookURL: "https://example.com/hook",
	}

	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Posts, got.Posts)
	assert.Equal(t, want.WebhookURL, got.WebhookURL)

	raw, err := os.ReadFile(filepath.Join(dir, "webhook-config.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"url\": \"https://example.com/hook\"\n}", string(raw))

	raw, err = os.ReadFile(filepath.Join(dir, "posts.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  {\n    \"id\": 1700000000001,")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files should be left behind")
}

func TestStore_SaveNilPostsWritesEmptyArray(t *testing.T) {
	store, dir := setupFileStore(t)

	require.NoError(t, store.Save(context.Background(), &model.Snapshot{}))

	raw, err := os.ReadFile(filepath.Join(dir, "posts.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestStore_LoadCorruptDocuments(t *testing.T) {
	tests := []struct {
		name        string
		posts       string
		config      string
		wantPosts   int
		wantWebhook string
	}{
		{
			name:        "truncated posts, valid config",
			posts:       `[{"id": 1, "title": "x"`,
			config:      `{"url": "http://hook.local"}`,
			wantPosts:   0,
			wantWebhook: "http://hook.local",
		},
		{
			name:        "valid posts, garbage config",
			posts:       `[{"id": 1, "title": "t", "content": "c", "date": "2026-01-01T00:00:00.000Z"}]`,
			config:      `not json`,
			wantPosts:   1,
			wantWebhook: "",
		},
		{
			name:        "null posts",
			posts:       `null`,
			config:      `{}`,
			wantPosts:   0,
			wantWebhook: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, dir := setupFileStore(t)
			require.NoError(t, os.MkdirAll(dir, 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "posts.json"), []byte(tt.posts), 0o644))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "webhook-config.json"), []byte(tt.config), 0o644))

			snapshot, err := store.Load(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, snapshot.Posts)
			assert.Len(t, snapshot.Posts, tt.wantPosts)
			assert.Equal(t, tt.wantWebhook, snapshot.WebhookURL)
		})
	}
}

func TestStore_SaveFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file permission semantics differ on windows")
	}

	parent := t.TempDir()
	blocker := filepath.Join(parent, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))

	store := file_store.NewStore(filepath.Join(blocker, "data"), "posts.json", "webhook-config.json", logger.New("test"), prometheus.NewPrometheusMetricsProvider())

	err := store.Save(context.Background(), &model.Snapshot{})
	require.Error(t, err)
	assert.ErrorIs(t, err, custom_errors.ErrPersistence)
}
