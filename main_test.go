package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nubit3/trex-art/canvas"
	"github.com/Nubit3/trex-art/core"
	"github.com/Nubit3/trex-art/stores/filesystem"
)

func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	publicDir := t.TempDir()
	for _, p := range []string{"art/rex.png", "comics/strip.jpg", "rexy-pong.html"} {
		full := filepath.Join(publicDir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("asset "+p), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	content := core.DefaultContent()
	registry := canvas.NewTemplates(content.Templates...)
	r := setupRouter(filesystem.NewStore(publicDir), content, registry, publicDir)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, publicDir
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	var sb strings.Builder
	if _, err := io.Copy(&sb, resp.Body); err != nil {
		t.Fatal(err)
	}
	return resp, sb.String()
}

func TestRouter_Gallery(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp, body := get(t, srv.URL+"/api/gallery")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status code mismatch: got %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var urls []string
	if err := json.Unmarshal([]byte(body), &urls); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(urls) != 1 || urls[0] != "/art/rex.png" {
		t.Errorf("gallery mismatch: got %v", urls)
	}
	if got := resp.Header.Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control mismatch: got %q", got)
	}

	_, body = get(t, srv.URL+"/api/comics")
	if !strings.Contains(body, "/comics/strip.jpg") {
		t.Errorf("comics mismatch: got %s", body)
	}
}

func TestRouter_StaticAssets(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp, body := get(t, srv.URL+"/art/rex.png")
	if resp.StatusCode != http.StatusOK || body != "asset art/rex.png" {
		t.Errorf("art asset mismatch: status %d body %q", resp.StatusCode, body)
	}
	if got := resp.Header.Get("Cache-Control"); !strings.HasPrefix(got, "public") {
		t.Errorf("Cache-Control mismatch: got %q", got)
	}

	resp, body = get(t, srv.URL+"/rexy-pong.html")
	if resp.StatusCode != http.StatusOK || body != "asset rexy-pong.html" {
		t.Errorf("public root asset mismatch: status %d body %q", resp.StatusCode, body)
	}
}

func TestRouter_FrontendFallback(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp, body := get(t, srv.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status code mismatch: got %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if !strings.Contains(body, "doodle-canvas") {
		t.Error("expected the embedded index page")
	}
	if strings.Contains(body, backendHostPlaceholder) {
		t.Error("expected the backend host placeholder to be replaced")
	}
	if host := strings.TrimPrefix(srv.URL, "http://"); !strings.Contains(body, `data-backend="`+host+`"`) {
		t.Errorf("expected data-backend to default to the request host %s", host)
	}

	resp, _ = get(t, srv.URL+"/draw")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("client route status mismatch: got %d, want %d", resp.StatusCode, http.StatusOK)
	}

	resp, _ = get(t, srv.URL+"/missing.js")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing asset status mismatch: got %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestRouter_BackendHostOverride(t *testing.T) {
	t.Setenv("REXTOON_BACKEND_HOST", "api.rextoon.example")
	srv, _ := setupTestServer(t)

	_, body := get(t, srv.URL+"/")
	if !strings.Contains(body, `data-backend="api.rextoon.example"`) {
		t.Error("expected data-backend to carry REXTOON_BACKEND_HOST")
	}

	_, js := get(t, srv.URL+"/app.js")
	if !strings.Contains(js, "dataset.backend") {
		t.Error("expected app.js to read the backend host from the page")
	}
}

func TestRouter_ContentEndpoints(t *testing.T) {
	srv, _ := setupTestServer(t)

	tests := []struct {
		path       string
		wantStatus int
		contains   string
	}{
		{"/api/games", http.StatusOK, "rexy-invaders"},
		{"/api/games/rexy-runner", http.StatusOK, "/rexy-runner-game.html"},
		{"/api/games/nope", http.StatusNotFound, "Game not found"},
		{"/api/rexy/faq", http.StatusOK, "What is REXTOON?"},
		{"/api/rexy/faq/0", http.StatusOK, "Who is T-Rex?"},
		{"/api/templates", http.StatusOK, "rexy-outline"},
		{"/api/collections/art", http.StatusOK, "rex.png"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv.URL+tt.path)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("Status code mismatch: got %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if !strings.Contains(body, tt.contains) {
				t.Errorf("body %q does not contain %q", body, tt.contains)
			}
		})
	}
}
