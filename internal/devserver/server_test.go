package devserver

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.MediaDir = dir
	cfg.HLSScriptURL = "/static/hls.js"
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, log), dir
}

func TestServer_HarnessPage(t *testing.T) {
	s, dir := newTestServer(t)
	if err := os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `src="/static/hls.js"`) {
		t.Error("harness page should reference the configured hls.js script")
	}
	if !strings.Contains(body, "/media/clip.mp4") {
		t.Error("harness page should link available media")
	}
}

func TestServer_MediaRangeRequest(t *testing.T) {
	s, dir := newTestServer(t)
	if err := os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("0123456789"), 0o644); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/media/clip.mp4", nil)
	req.Header.Set("Range", "bytes=2-5")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusPartialContent {
		t.Fatalf("status: got %d, want 206", rec.Code)
	}
	if got := rec.Body.String(); got != "2345" {
		t.Errorf("range body: got %q, want 2345", got)
	}
}

func TestServer_MediaRejectsTraversal(t *testing.T) {
	s, _ := newTestServer(t)

	// The router does not match slashes inside {name}; encoded separators
	// must still be refused once decoded.
	req := httptest.NewRequest(http.MethodGet, "/media/..%2Fsecret", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code == http.StatusOK {
		t.Errorf("traversal request must not succeed, got %d", rec.Code)
	}
}

func TestServer_MediaNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/absent.mp4", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestServer_HealthAndMetrics(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "webvideo_dev_http_requests_total") {
		t.Error("metrics output should include request counter")
	}
}
