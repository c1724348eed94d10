// Package server exposes the operational HTTP surface: health, metrics and
// the Telegram webhook endpoint.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	// WebhookSecret is the last path segment of the webhook route
	WebhookSecret string
	// Webhook receives Telegram updates. The route is not mounted when nil.
	Webhook http.HandlerFunc
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

type handler struct {
	store   Pinger
	secret  string
	webhook http.HandlerFunc
	started time.Time
}

func NewRouter(cfg Config, store Pinger) http.Handler {
	h := &handler{
		store:   store,
		secret:  cfg.WebhookSecret,
		webhook: cfg.Webhook,
		started: time.Now(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)
	r.Handle("/metrics", promhttp.Handler())
	if h.webhook != nil {
		r.Post("/telegram/{secret}", h.telegram)
	}
	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:       "ok",
		Uptime:       time.Since(h.started).Round(time.Second).String(),
		Dependencies: map[string]string{"database": "ok"},
	}
	code := http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Dependencies["database"] = err.Error()
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}

func (h *handler) telegram(w http.ResponseWriter, r *http.Request) {
	secret := chi.URLParam(r, "secret")
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.secret)) != 1 {
		http.NotFound(w, r)
		return
	}
	h.webhook(w, r)
}
