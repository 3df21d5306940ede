package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-service/internal/application/persistence"
	post_service "blog-service/internal/application/service/post"
	webhook_service "blog-service/internal/application/service/webhook"
	"blog-service/internal/domain/idgen"
	ports "blog-service/internal/domain/ports/output"
	"blog-service/internal/domain/ports/output/store"
	"blog-service/internal/infrastructure/config"
	delivery_grpc "blog-service/internal/infrastructure/inbound/grpc"
	delivery_http "blog-service/internal/infrastructure/inbound/http"
	metrics_server "blog-service/internal/infrastructure/inbound/metrics"
	"blog-service/internal/infrastructure/logger"
	"blog-service/internal/infrastructure/outbound/events/sse"
	prometheus_metrics "blog-service/internal/infrastructure/outbound/metrics/prometheus"
	"blog-service/internal/infrastructure/outbound/repository/post/memory"
	file_store "blog-service/internal/infrastructure/outbound/store/file"
	postgres_store "blog-service/internal/infrastructure/outbound/store/postgres"
	redis_store "blog-service/internal/infrastructure/outbound/store/redis"
	webhook_http "blog-service/internal/infrastructure/outbound/webhook/http"
)

func main() {
	cfg := config.MustLoad()
	ctx := context.Background()
	log := logger.New(cfg.Env)

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()

	dataStore, err := openStore(ctx, cfg, log, metrics)
	if err != nil {
		log.Error("Failed to open store", slog.String("driver", cfg.Storage.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := dataStore.Close(); err != nil {
			log.Error("Failed to close store", slog.String("error", err.Error()))
		}
	}()

	snapshot, err := dataStore.Load(ctx)
	if err != nil {
		log.Error("Failed to load data", slog.String("error", err.Error()))
		os.Exit(1)
	}

	postRepo := memory.NewPostRepository(log, idgen.New(), snapshot.Posts)
	dispatcher := webhook_http.NewDispatcher(snapshot.WebhookURL, webhook_http.Options{
		Timeout: cfg.Webhook.Timeout,
		Source:  cfg.Webhook.Source,
		Secret:  cfg.Webhook.Secret,
	}, log, metrics)
	registry := sse.NewRegistry(cfg.Events.BufferSize, log, metrics)
	persister := persistence.NewPersister(dataStore, postRepo, dispatcher, log)

	originalPostService := post_service.NewPostService(postRepo, persister, registry, dispatcher, log)
	postService := post_service.NewPostServiceMetricsDecorator(originalPostService, log, metrics)
	webhookService := webhook_service.NewWebhookService(dispatcher, persister, log)

	router := delivery_http.NewRouter(delivery_http.RouterDeps{
		PostService:    postService,
		WebhookService: webhookService,
		Subscribers:    registry,
		Validate:       validator.New(),
		Log:            log,
		Metrics:        metrics,
		MaxBodyBytes:   cfg.HTTPServer.MaxBodyBytes,
	})
	httpServer := delivery_http.NewServer(router, cfg.HTTPServer.Address, cfg.HTTPServer.Port, cfg.HTTPServer.ReadHeaderTimeout, log)

	var grpcServer *delivery_grpc.Server
	if cfg.GRPCServer.Enabled {
		grpcServer = delivery_grpc.NewServer(cfg.GRPCServer.Address, cfg.GRPCServer.Port, log, metrics)
	}
	var metricsServer *metrics_server.MetricsServer
	if cfg.Prometheus.Enabled {
		metricsServer = metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)
	}

	metrics.SetServiceHealth(true)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	httpDone := make(chan struct{})
	grpcDone := make(chan struct{})
	metricsDone := make(chan struct{})

	go func() {
		defer close(httpDone)
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
			select {
			case quit <- syscall.SIGTERM:
			default:
			}
		}
	}()

	go func() {
		defer close(grpcDone)
		if grpcServer == nil {
			return
		}
		if err := grpcServer.Run(); err != nil {
			log.Error("gRPC server error", slog.String("error", err.Error()))
		}
	}()

	go func() {
		defer close(metricsDone)
		if metricsServer == nil {
			return
		}
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
	}()

	log.Info("Blog service started",
		slog.String("client", fmt.Sprintf("http://localhost:%d/client", cfg.HTTPServer.Port)),
		slog.String("admin", fmt.Sprintf("http://localhost:%d/admin", cfg.HTTPServer.Port)))

	<-quit
	log.Info("Shutting down servers...")

	metrics.SetServiceHealth(false)
	if grpcServer != nil {
		grpcServer.SetServing(false)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Open event streams only end once their subscribers are closed.
	registry.Close()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	// The HTTP shutdown may have used up shutdownCtx; the last flush gets its own deadline.
	flushCtx, flushCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := postService.Flush(flushCtx); err != nil {
		log.Error("Failed to flush data on shutdown", slog.String("error", err.Error()))
	}
	flushCancel()

	if grpcServer != nil {
		if err := grpcServer.Shutdown(); err != nil {
			log.Error("gRPC server shutdown error", slog.String("error", err.Error()))
		}
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
		}
	}

	<-httpDone
	<-grpcDone
	<-metricsDone

	log.Info("Server exited")
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger, metrics ports.MetricsProvider) (store.Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverFile, "":
		log.Info("Using file store", slog.String("dir", cfg.Storage.DataDir))
		return file_store.NewStore(cfg.Storage.DataDir, cfg.Storage.PostsFile, cfg.Storage.WebhookConfigFile, log, metrics), nil

	case config.StorageDriverPostgres:
		dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.Database.Username,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.DbName)

		poolConfig, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse postgres config: %w", err)
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, fmt.Errorf("create postgres pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := postgres_store.Migrate(pool, log); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("Using postgres store", slog.String("host", cfg.Database.Host), slog.String("db", cfg.Database.DbName))
		return postgres_store.NewStore(pool, log, metrics), nil

	case config.StorageDriverRedis:
		log.Info("Connecting to Redis",
			slog.String("address", cfg.Redis.Address),
			slog.Int("port", cfg.Redis.Port),
			slog.Int("db", cfg.Redis.DB))
		client, err := redis_store.NewClient(cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("create redis client: %w", err)
		}
		return redis_store.NewStore(client, cfg.Redis.KeyPrefix, log, metrics), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
