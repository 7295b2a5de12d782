package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/devjobs/internal/config"
	"github.com/Abraxas-365/devjobs/jobboard/memstore"
	"github.com/Abraxas-365/devjobs/pkg/iam/auth"
)

func memoryConfig() config.Config {
	cfg := config.Default()
	cfg.Storage.Driver = "memory"
	cfg.Redis.Addr = ""
	cfg.Auth.JWTSecret = "test-secret"
	return cfg
}

func TestContainerMemoryWiring(t *testing.T) {
	container, err := NewContainer(memoryConfig())
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	defer container.Close()

	app := newApp(container)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["storage"] != "memory" {
		t.Fatalf("unexpected health body: %v", body)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/jobpostings/search", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search status = %d", resp.StatusCode)
	}

	token, err := container.TokenService.GenerateAccessToken(auth.NewPrincipal(memstore.DemoIndividualID, auth.RoleIndividual))
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/applications/my", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("my applications status = %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/bookmarks/toggle/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle bookmark status = %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/bookmarks/count", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var count struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&count); err != nil {
		t.Fatal(err)
	}
	if count.Count != 1 {
		t.Fatalf("bookmark count = %d, want 1", count.Count)
	}
}

func TestContainerRejectsRedisLockWithoutAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.Lock.Driver = "redis"
	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected an error for redis lock without an address")
	}
}
