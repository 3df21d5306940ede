package webhook_http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
)

const (
	HeaderSource    = "X-Webhook-Source"
	HeaderSignature = "X-Webhook-Signature"

	ErrMessageNotConfigured = "No webhook URL configured"

	maxDrainBytes = 64 << 10
)

type Options struct {
	Timeout time.Duration
	Source  string
	// Secret, when set, signs each body with HMAC-SHA256.
	Secret string
}

// Dispatcher posts JSON payloads to the single configured webhook URL. It never retries.
type Dispatcher struct {
	mu      sync.RWMutex
	url     string
	client  *http.Client
	source  string
	secret  []byte
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewDispatcher(url string, opts Options, log ports.Logger, metrics ports.MetricsProvider) *Dispatcher {
	var secret []byte
	if opts.Secret != "" {
		secret = []byte(opts.Secret)
	}
	return &Dispatcher{
		url:     url,
		client:  &http.Client{Timeout: opts.Timeout},
		source:  opts.Source,
		secret:  secret,
		log:     log,
		metrics: metrics,
	}
}

func (d *Dispatcher) SetURL(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url = url
}

func (d *Dispatcher) URL() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.url
}

func (d *Dispatcher) Send(ctx context.Context, payload *model.WebhookPayload) *model.DeliveryResult {
	url := d.URL()
	if url == "" {
		return &model.DeliveryResult{Success: false, Error: ErrMessageNotConfigured}
	}

	start := time.Now()
	status, err := d.post(ctx, url, payload)
	d.metrics.RecordWebhookDeliveryDuration(payload.Event, time.Since(start))
	if err != nil {
		d.metrics.IncrementWebhookDeliveries(payload.Event, false)
		d.log.Error("Error sending webhook",
			slog.String("event", payload.Event),
			slog.String("url", url),
			slog.String("error", err.Error()))
		return &model.DeliveryResult{Success: false, Error: err.Error()}
	}

	d.metrics.IncrementWebhookDeliveries(payload.Event, true)
	d.log.Info("Webhook sent successfully",
		slog.String("event", payload.Event),
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)))
	return &model.DeliveryResult{Success: true}
}

func (d *Dispatcher) post(ctx context.Context, url string, payload *model.WebhookPayload) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderSource, d.source)
	if d.secret != nil {
		req.Header.Set(HeaderSignature, "sha256="+Sign(d.secret, body))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &StatusError{StatusCode: resp.StatusCode}
	}
	return resp.StatusCode, nil
}

// StatusError reports a non-2xx webhook response. Its text is what callers see
// in DeliveryResult.Error.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

// Sign returns the hex HMAC-SHA256 of body, as sent in X-Webhook-Signature.
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
