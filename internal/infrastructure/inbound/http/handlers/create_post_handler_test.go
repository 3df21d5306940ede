package http_handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blog-service/internal/custom_errors"
	model "blog-service/internal/domain/models"
	"blog-service/internal/infrastructure/logger"
	post_service_mock "blog-service/mocks/post"
)

func TestCreatePostHandler(t *testing.T) {
	created := &model.Post{ID: 42, Title: "Hello", Content: "World", Date: "2026-01-02T03:04:05.678Z"}

	tests := []struct {
		name       string
		body       string
		mocks      func(s *post_service_mock.Service)
		wantStatus int
		wantBody   string
	}{
		{
			name: "Success",
			body: `{"title":"Hello","content":"World"}`,
			mocks: func(s *post_service_mock.Service) {
				s.On("CreatePost", mock.Anything, &model.CreatePostDTO{Title: "Hello", Content: "World"}).Return(created, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":42,"title":"Hello","content":"World","date":"2026-01-02T03:04:05.678Z"}`,
		},
		{
			name: "Success with date",
			body: `{"title":"Hello","content":"World","date":"2026-01-02T03:04:05.678Z"}`,
			mocks: func(s *post_service_mock.Service) {
				date := "2026-01-02T03:04:05.678Z"
				s.On("CreatePost", mock.Anything, &model.CreatePostDTO{Title: "Hello", Content: "World", Date: &date}).Return(created, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":42,"title":"Hello","content":"World","date":"2026-01-02T03:04:05.678Z"}`,
		},
		{
			name:       "Missing title",
			body:       `{"content":"World"}`,
			mocks:      func(s *post_service_mock.Service) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Title and content are required"}`,
		},
		{
			name:       "Empty content",
			body:       `{"title":"Hello","content":""}`,
			mocks:      func(s *post_service_mock.Service) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Title and content are required"}`,
		},
		{
			name:       "Missing fields with a date",
			body:       `{"date":"2024-01-15T10:00:00"}`,
			mocks:      func(s *post_service_mock.Service) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Title and content are required"}`,
		},
		{
			name: "Date without offset is kept verbatim",
			body: `{"title":"Hello","content":"World","date":"2024-01-15T10:00:00"}`,
			mocks: func(s *post_service_mock.Service) {
				date := "2024-01-15T10:00:00"
				s.On("CreatePost", mock.Anything, &model.CreatePostDTO{Title: "Hello", Content: "World", Date: &date}).
					Return(&model.Post{ID: 42, Title: "Hello", Content: "World", Date: date}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":42,"title":"Hello","content":"World","date":"2024-01-15T10:00:00"}`,
		},
		{
			name: "Minute precision date is kept verbatim",
			body: `{"title":"Hello","content":"World","date":"2024-01-15T10:00"}`,
			mocks: func(s *post_service_mock.Service) {
				date := "2024-01-15T10:00"
				s.On("CreatePost", mock.Anything, &model.CreatePostDTO{Title: "Hello", Content: "World", Date: &date}).
					Return(&model.Post{ID: 42, Title: "Hello", Content: "World", Date: date}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":42,"title":"Hello","content":"World","date":"2024-01-15T10:00"}`,
		},
		{
			name: "Date only is kept verbatim",
			body: `{"title":"Hello","content":"World","date":"2024-01-15"}`,
			mocks: func(s *post_service_mock.Service) {
				date := "2024-01-15"
				s.On("CreatePost", mock.Anything, &model.CreatePostDTO{Title: "Hello", Content: "World", Date: &date}).
					Return(&model.Post{ID: 42, Title: "Hello", Content: "World", Date: date}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":42,"title":"Hello","content":"World","date":"2024-01-15"}`,
		},
		{
			name:       "Empty body",
			body:       ``,
			mocks:      func(s *post_service_mock.Service) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Title and content are required"}`,
		},
		{
			name:       "Malformed JSON",
			body:       `{"title":`,
			mocks:      func(s *post_service_mock.Service) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid request body"}`,
		},
		{
			name: "Service validation error",
			body: `{"title":"Hello","content":"World"}`,
			mocks: func(s *post_service_mock.Service) {
				s.On("CreatePost", mock.Anything, mock.Anything).Return(nil, custom_errors.ErrPostValidation)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Title and content are required"}`,
		},
		{
			name: "Service internal error",
			body: `{"title":"Hello","content":"World"}`,
			mocks: func(s *post_service_mock.Service) {
				s.On("CreatePost", mock.Anything, mock.Anything).Return(nil, assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to create post"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := post_service_mock.NewService(t)
			tt.mocks(service)
			h := NewCreatePostHandler(service, validator.New(), logger.New("test"), 1<<20)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestCreatePostHandler_BodyTooLarge(t *testing.T) {
	service := post_service_mock.NewService(t)
	h := NewCreatePostHandler(service, validator.New(), logger.New("test"), 16)

	rec := httptest.NewRecorder()
	body := `{"title":"` + strings.Repeat("a", 64) + `","content":"b"}`
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(body)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Request body too large", resp.Error)
}

func TestListPostsHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service := post_service_mock.NewService(t)
		service.On("ListPosts", mock.Anything).Return([]*model.Post{
			{ID: 1, Title: "a", Content: "b", Date: "2026-01-01T00:00:00.000Z"},
		}, nil)

		rec := httptest.NewRecorder()
		NewListPostsHandler(service, logger.New("test")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"id":1,"title":"a","content":"b","date":"2026-01-01T00:00:00.000Z"}]`, rec.Body.String())
	})

	t.Run("Empty list renders as array", func(t *testing.T) {
		service := post_service_mock.NewService(t)
		service.On("ListPosts", mock.Anything).Return(nil, nil)

		rec := httptest.NewRecorder()
		NewListPostsHandler(service, logger.New("test")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("Service error", func(t *testing.T) {
		service := post_service_mock.NewService(t)
		service.On("ListPosts", mock.Anything).Return(nil, assert.AnError)

		rec := httptest.NewRecorder()
		NewListPostsHandler(service, logger.New("test")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Failed to fetch posts"}`, rec.Body.String())
	})
}
