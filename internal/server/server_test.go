package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error {
	return f.err
}

func TestHealthOK(t *testing.T) {
	r := NewRouter(Config{}, fakePinger{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Dependencies["database"])
}

func TestHealthDegraded(t *testing.T) {
	r := NewRouter(Config{}, fakePinger{err: errors.New("database is closed")})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "database is closed", resp.Dependencies["database"])
}

func TestMetricsEndpoint(t *testing.T) {
	r := NewRouter(Config{}, fakePinger{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestWebhookSecret(t *testing.T) {
	called := 0
	r := NewRouter(Config{
		WebhookSecret: "s3cret",
		Webhook: func(w http.ResponseWriter, r *http.Request) {
			called++
			w.WriteHeader(http.StatusOK)
		},
	}, fakePinger{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/telegram/wrong", strings.NewReader("{}")))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, called)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/telegram/s3cret", strings.NewReader("{}")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, called)
}

func TestWebhookRouteAbsentWithoutHandler(t *testing.T) {
	r := NewRouter(Config{WebhookSecret: "s3cret"}, fakePinger{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/telegram/s3cret", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
