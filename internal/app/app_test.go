package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/riskibarqy/hockey-league/internal/config"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                 config.EnvDev,
		ServiceName:            "hockey-league-api",
		HTTPAddr:               ":0",
		ReadTimeout:            time.Second,
		WriteTimeout:           time.Second,
		CORSAllowedOrigins:     []string{"*"},
		CacheEnabled:           true,
		CacheTTL:               time.Minute,
		AnubisBaseURL:          "http://127.0.0.1:1",
		AnubisIntrospectURL:    "/v1/auth/introspect",
		AnubisTimeout:          time.Second,
		EAClubIDs:              []int64{3383},
		EATimeout:              time.Second,
		StatsQueueMaxRetries:   3,
		StatsQueueBatchSize:    10,
		StatsQueueMaxBatchSize: 50,
		StatsQueueWorkers:      1,
	}
}

func TestNew_MemoryBackendServesRoutes(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), memoryConfig(), logging.NewNop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer func() {
		if err := a.Shutdown(context.Background()); err != nil {
			t.Fatalf("shutdown: %v", err)
		}
	}()

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthz 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/standings?season_id=nahl-2026-winter", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected standings without token to be 401, got %d", rec.Code)
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := New(context.Background(), cfg, nil, nil); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestNew_DuplicateMetricsRegistrationFails(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	if _, err := New(context.Background(), memoryConfig(), nil, registry); err != nil {
		t.Fatalf("first app: %v", err)
	}
	if _, err := New(context.Background(), memoryConfig(), nil, registry); err == nil {
		t.Fatalf("expected duplicate metric registration error")
	}
}

func TestRunQueue_DisabledReturnsImmediately(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), memoryConfig(), nil, nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	done := make(chan struct{})
	go func() {
		a.RunQueue(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("RunQueue must return when the interval is zero")
	}
}

func TestRunQueue_StopsOnCancel(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.StatsQueueProcessInterval = 10 * time.Millisecond
	a, err := New(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.RunQueue(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("RunQueue did not stop after cancel")
	}
}
