package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func healthRequest(t *testing.T, target string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestLiveness(t *testing.T) {
	rec, c := healthRequest(t, "/health")

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "ok" {
		t.Fatalf("unexpected status: %v", body["status"])
	}
	if cols, _ := body["collections"].([]any); len(cols) != 8 {
		t.Fatalf("expected 8 collections, got %v", body["collections"])
	}
}

func TestReadiness_NoDependenciesIsReady(t *testing.T) {
	rec, c := healthRequest(t, "/health/ready")

	if err := NewReadinessHandler(nil, nil).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 in memory-store mode, got %d", rec.Code)
	}
}

func TestReadiness_DegradedWhenRedisUnreachable(t *testing.T) {
	// nothing listens on this port, so the ping fails immediately
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	defer rdb.Close()

	rec, c := healthRequest(t, "/health/ready")
	if err := NewReadinessHandler(nil, rdb).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var body struct {
		Status       string `json:"status"`
		Dependencies map[string]struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"dependencies"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.Status != "degraded" {
		t.Fatalf("expected degraded status, got %q", body.Status)
	}
	dep, ok := body.Dependencies["redis"]
	if !ok || dep.Status != "unhealthy" || dep.Error == "" {
		t.Fatalf("redis dependency not reported unhealthy: %+v", body.Dependencies)
	}
}
