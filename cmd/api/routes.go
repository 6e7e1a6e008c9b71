package main

import (
	"context"
	"net/http"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/httpx"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func newRouter(ctx context.Context, cfg *config.API, svc *book.Service, ready func(context.Context) error, log *zap.Logger) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.Text(w, http.StatusOK, "ok")
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := ready(ctx); err != nil {
			httpx.Text(w, http.StatusServiceUnavailable, "db not ready")
			return
		}
		httpx.Text(w, http.StatusOK, "ready")
	})
	router.Handle("GET /metrics", promhttp.Handler())

	book.NewHTTPHandler(svc, log.Named("books")).Register(router)

	limiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	return httpx.Chain(router,
		httpx.RecoveryMiddleware(log),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log),
		httpx.MetricsMiddleware,
		httpx.SecurityHeadersMiddleware(false),
		limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(maxBodyBytes),
	)
}
