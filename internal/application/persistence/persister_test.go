package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blog-service/internal/application/persistence"
	"blog-service/internal/custom_errors"
	model "blog-service/internal/domain/models"
	"blog-service/internal/infrastructure/logger"
	post_repository_mock "blog-service/mocks/post"
	store_mock "blog-service/mocks/store"
	webhook_mock "blog-service/mocks/webhook"
)

func TestPersister_Persist(t *testing.T) {
	log := logger.New("test")
	posts := []*model.Post{{ID: 1, Title: "t", Content: "c", Date: "2026-01-01T00:00:00.000Z"}}

	tests := []struct {
		name    string
		mocks   func(repo *post_repository_mock.Repository, store *store_mock.Store, dispatcher *webhook_mock.Dispatcher)
		wantErr error
	}{
		{
			name: "Success",
			mocks: func(repo *post_repository_mock.Repository, store *store_mock.Store, dispatcher *webhook_mock.Dispatcher) {
				repo.On("List", mock.Anything).Return(posts, nil)
				dispatcher.On("URL").Return("http://hook.local")
				store.On("Save", mock.Anything, &model.Snapshot{Posts: posts, WebhookURL: "http://hook.local"}).Return(nil)
			},
		},
		{
			name: "Store failure is returned",
			mocks: func(repo *post_repository_mock.Repository, store *store_mock.Store, dispatcher *webhook_mock.Dispatcher) {
				repo.On("List", mock.Anything).Return(posts, nil)
				dispatcher.On("URL").Return("")
				store.On("Save", mock.Anything, mock.AnythingOfType("*model.Snapshot")).Return(custom_errors.ErrPersistence)
			},
			wantErr: custom_errors.ErrPersistence,
		},
		{
			name: "List failure skips save",
			mocks: func(repo *post_repository_mock.Repository, store *store_mock.Store, dispatcher *webhook_mock.Dispatcher) {
				repo.On("List", mock.Anything).Return(nil, assert.AnError)
			},
			wantErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := post_repository_mock.NewRepository(t)
			store := store_mock.NewStore(t)
			dispatcher := webhook_mock.NewDispatcher(t)
			tt.mocks(repo, store, dispatcher)

			p := persistence.NewPersister(store, repo, dispatcher, log)
			err := p.Persist(context.Background())

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
