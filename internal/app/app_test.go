package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/assetdesk-backend/internal/data/db"
	"github.com/yungbote/assetdesk-backend/internal/observability"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		HTTP: HTTPConfig{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second},
		Log:  LogConfig{Mode: "test"},
		DB: db.Config{
			Driver: db.DriverSQLite,
			DSN:    "file:" + filepath.Join(dir, "assetdesk.db"),
		},
		Migrate: true,
		Auth: AuthConfig{
			JWTSecret: "app-test-secret-0123456789",
			Issuer:    "assetdesk-test",
			AccessTTL: time.Hour,
		},
		Storage: StorageConfig{Mode: "local", LocalRoot: filepath.Join(dir, "media")},
		Otel:    observability.OtelConfig{Enabled: false},
	}
}

func TestNewWiresServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a, err := New(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: code=%d body=%q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated listing: code=%d", rec.Code)
	}
}

func TestNewLoginFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a, err := New(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if _, err := a.Services.Auth.CreateUser(context.Background(), "editor@example.com", "password-1", "editor", false); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	body := strings.NewReader(`{"email":"editor@example.com","password":"password-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/login", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: code=%d body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil || out.AccessToken == "" {
		t.Fatalf("login body: err=%v body=%s", err, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/assets", nil)
	req.Header.Set("Authorization", "Bearer "+out.AccessToken)
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("listing with token: code=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestNewFailsOnBadStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Mode = "s3"
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected storage bootstrap error")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a, err := New(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
