package main

import (
	"context"
	"net/http"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/metrics"
)

func newRouter(ctx context.Context, cfg config.Config, repo book.Repository) http.Handler {
	bookHandler := book.NewHTTPHandler(book.NewService(repo))
	requireAuth := httpx.BasicAuthMiddleware(cfg.Credentials)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := repo.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", metrics.Handler())

	router.HandleFunc("GET /{$}", bookHandler.Welcome)
	router.Handle("GET /books", requireAuth(http.HandlerFunc(bookHandler.List)))
	router.Handle("POST /add", requireAuth(http.HandlerFunc(bookHandler.Create)))
	router.Handle("PUT /update/{id}", requireAuth(http.HandlerFunc(bookHandler.Update)))
	router.Handle("DELETE /delete/{id}", requireAuth(http.HandlerFunc(bookHandler.Delete)))

	rateLimiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.MetricsMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.AllowedOrigins),
		rateLimiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	)
}
