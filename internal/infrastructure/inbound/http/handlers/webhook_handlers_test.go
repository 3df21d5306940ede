package http_handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"blog-service/internal/custom_errors"
	model "blog-service/internal/domain/models"
	"blog-service/internal/infrastructure/logger"
	webhook_service_mock "blog-service/mocks/webhook"
)

func TestWebhookConfigHandler_Set(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mocks      func(s *webhook_service_mock.Service)
		wantStatus int
		wantBody   string
	}{
		{
			name: "Success",
			body: `{"url":"https://example.com/hook"}`,
			mocks: func(s *webhook_service_mock.Service) {
				s.On("SetURL", mock.Anything, "https://example.com/hook").Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"message":"Webhook configuration saved"}`,
		},
		{
			name:       "Missing URL",
			body:       `{}`,
			mocks:      func(s *webhook_service_mock.Service) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Webhook URL is required"}`,
		},
		{
			name:       "Empty body",
			body:       ``,
			mocks:      func(s *webhook_service_mock.Service) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Webhook URL is required"}`,
		},
		{
			name:       "Not a URL",
			body:       `{"url":"not a url"}`,
			mocks:      func(s *webhook_service_mock.Service) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Webhook URL must be an absolute http or https URL"}`,
		},
		{
			name:       "Malformed JSON",
			body:       `nope`,
			mocks:      func(s *webhook_service_mock.Service) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid request body"}`,
		},
		{
			name: "Service rejects URL",
			body: `{"url":"https://example.com/hook"}`,
			mocks: func(s *webhook_service_mock.Service) {
				s.On("SetURL", mock.Anything, mock.Anything).Return(custom_errors.ErrWebhookURLInvalid)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Webhook URL must be an absolute http or https URL"}`,
		},
		{
			name: "Service internal error",
			body: `{"url":"https://example.com/hook"}`,
			mocks: func(s *webhook_service_mock.Service) {
				s.On("SetURL", mock.Anything, mock.Anything).Return(assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to save webhook configuration"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := webhook_service_mock.NewService(t)
			tt.mocks(service)
			h := NewWebhookConfigHandler(service, validator.New(), logger.New("test"), 1<<20)

			rec := httptest.NewRecorder()
			h.Set(rec, httptest.NewRequest(http.MethodPost, "/webhook-config", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWebhookConfigHandler_Get(t *testing.T) {
	service := webhook_service_mock.NewService(t)
	service.On("GetURL", mock.Anything).Return("https://example.com/hook")
	h := NewWebhookConfigHandler(service, validator.New(), logger.New("test"), 1<<20)

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/webhook-config", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"https://example.com/hook"}`, rec.Body.String())
}

func TestTestWebhookHandler(t *testing.T) {
	tests := []struct {
		name       string
		mocks      func(s *webhook_service_mock.Service)
		wantStatus int
		wantBody   string
	}{
		{
			name: "Delivered",
			mocks: func(s *webhook_service_mock.Service) {
				s.On("TestWebhook", mock.Anything).Return(&model.DeliveryResult{Success: true}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"message":"Webhook test successful"}`,
		},
		{
			name: "Delivery failed",
			mocks: func(s *webhook_service_mock.Service) {
				s.On("TestWebhook", mock.Anything).Return(&model.DeliveryResult{Success: false, Error: "Request failed with status code 503"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":false,"message":"Webhook test failed: Request failed with status code 503"}`,
		},
		{
			name: "Not configured",
			mocks: func(s *webhook_service_mock.Service) {
				s.On("TestWebhook", mock.Anything).Return(nil, custom_errors.ErrWebhookNotConfigured)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"message":"No webhook URL configured"}`,
		},
		{
			name: "Internal error",
			mocks: func(s *webhook_service_mock.Service) {
				s.On("TestWebhook", mock.Anything).Return(nil, assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"message":"Error: failed to test webhook"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := webhook_service_mock.NewService(t)
			tt.mocks(service)

			rec := httptest.NewRecorder()
			NewTestWebhookHandler(service, logger.New("test")).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/test-webhook", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
