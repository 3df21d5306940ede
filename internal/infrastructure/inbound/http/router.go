package delivery_http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	post_service "blog-service/internal/domain/ports/input/post"
	webhook_service "blog-service/internal/domain/ports/input/webhook"
	ports "blog-service/internal/domain/ports/output"
	"blog-service/internal/infrastructure/inbound/http/handlers"
	"blog-service/internal/infrastructure/inbound/middleware"
)

type RouterDeps struct {
	PostService    post_service.Service
	WebhookService webhook_service.Service
	Subscribers    http_handlers.EventSubscriber
	Validate       *validator.Validate
	Log            ports.Logger
	Metrics        ports.MetricsProvider
	MaxBodyBytes   int64
}

func NewRouter(deps RouterDeps) http.Handler {
	createPost := http_handlers.NewCreatePostHandler(deps.PostService, deps.Validate, deps.Log, deps.MaxBodyBytes)
	listPosts := http_handlers.NewListPostsHandler(deps.PostService, deps.Log)
	webhookConfig := http_handlers.NewWebhookConfigHandler(deps.WebhookService, deps.Validate, deps.Log, deps.MaxBodyBytes)
	testWebhook := http_handlers.NewTestWebhookHandler(deps.WebhookService, deps.Log)
	events := http_handlers.NewEventsHandler(deps.Subscribers, deps.Log)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger(deps.Log, deps.Metrics))
	r.Use(chiMiddleware.Recoverer)

	r.Get("/posts", listPosts.ServeHTTP)
	r.Post("/posts", createPost.ServeHTTP)

	r.Get("/webhook-config", webhookConfig.Get)
	r.Post("/webhook-config", webhookConfig.Set)
	r.Post("/test-webhook", testWebhook.ServeHTTP)
	r.Get("/webhook-events", events.ServeHTTP)

	r.Get("/client", http_handlers.PageHandler(http_handlers.PageClient, deps.Log))
	r.Get("/admin", http_handlers.PageHandler(http_handlers.PageAdmin, deps.Log))
	r.Get("/health", http_handlers.HealthHandler)

	return r
}
