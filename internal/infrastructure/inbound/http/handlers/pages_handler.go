package http_handlers

import (
	"embed"
	"log/slog"
	"net/http"

	ports "blog-service/internal/domain/ports/output"
)

//go:embed pages/*.html
var pages embed.FS

const (
	PageClient = "client.html"
	PageAdmin  = "admin.html"
)

// PageHandler serves one of the embedded HTML pages.
func PageHandler(name string, log ports.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := pages.ReadFile("pages/" + name)
		if err != nil {
			log.Error("Page not found", slog.String("page", name), slog.String("error", err.Error()))
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
