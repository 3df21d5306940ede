package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"blog-service/internal/infrastructure/logger"
)

type recordedRequest struct {
	method, route, status string
}

type fakeMetrics struct {
	httpRequests []recordedRequest
	grpcRequests []recordedRequest
	durations    int
}

func (f *fakeMetrics) IncrementHTTPRequests(method, route, status string) {
	f.httpRequests = append(f.httpRequests, recordedRequest{method, route, status})
}
func (f *fakeMetrics) RecordHTTPRequestDuration(string, string, string, time.Duration) { f.durations++ }
func (f *fakeMetrics) IncrementGRPCRequests(method, status string) {
	f.grpcRequests = append(f.grpcRequests, recordedRequest{method: method, status: status})
}
func (f *fakeMetrics) RecordGRPCRequestDuration(string, string, time.Duration) { f.durations++ }
func (f *fakeMetrics) IncrementStoreOperations(string, bool)                   {}
func (f *fakeMetrics) RecordStoreOperationDuration(string, time.Duration)      {}
func (f *fakeMetrics) IncrementPostOperations(string, bool)                    {}
func (f *fakeMetrics) IncrementWebhookDeliveries(string, bool)                 {}
func (f *fakeMetrics) RecordWebhookDeliveryDuration(string, time.Duration)     {}
func (f *fakeMetrics) IncrementBroadcastEvents(string, int, int)               {}
func (f *fakeMetrics) SetActiveConnections(int)                                {}
func (f *fakeMetrics) SetServiceHealth(bool)                                   {}

func TestRequestLogger(t *testing.T) {
	metrics := &fakeMetrics{}
	r := chi.NewRouter()
	r.Use(RequestLogger(logger.New("test"), metrics))
	r.Get("/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/implicit", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/posts/1", "/implicit", "/missing"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Len(t, metrics.httpRequests, 3)
	assert.Equal(t, recordedRequest{"GET", "/posts/{id}", "418"}, metrics.httpRequests[0])
	assert.Equal(t, recordedRequest{"GET", "/implicit", "200"}, metrics.httpRequests[1])
	assert.Equal(t, "404", metrics.httpRequests[2].status)
	assert.Equal(t, 3, metrics.durations)
}

func TestUnaryLoggerInterceptor(t *testing.T) {
	metrics := &fakeMetrics{}
	interceptor := UnaryLoggerInterceptor(logger.New("test"), metrics)
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	resp, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return "resp", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "resp", resp)

	_, err = interceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.NotFound, "unknown service")
	})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = interceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return nil, errors.New("boom")
	})
	assert.Error(t, err)

	require.Len(t, metrics.grpcRequests, 3)
	assert.Equal(t, "OK", metrics.grpcRequests[0].status)
	assert.Equal(t, "NotFound", metrics.grpcRequests[1].status)
	assert.Equal(t, "Unknown", metrics.grpcRequests[2].status)
}
