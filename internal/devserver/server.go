// Package devserver is a small harness server for exercising the player in a
// real browser. It serves a test page that loads hls.js, sample media with
// HTTP range support, and Prometheus metrics. It is a development aid and is
// not part of the playback library itself.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var harnessTemplate = template.Must(template.New("harness").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>webvideo harness</title>
<script src="{{.HLSScriptURL}}"></script>
</head>
<body>
<h1>webvideo harness</h1>
<p>hls.js loaded: <span id="hls-status"></span></p>
<ul>
{{range .Media}}<li><a href="/media/{{.}}">{{.}}</a></li>
{{end}}</ul>
<video id="video" controls playsinline width="640"></video>
<script>
document.getElementById("hls-status").textContent =
  typeof Hls !== "undefined" && Hls.isSupported() ? "yes" : "no";
</script>
</body>
</html>
`))

// Server serves the browser harness page, sample media, and metrics.
type Server struct {
	cfg    *Config
	log    *slog.Logger
	router *mux.Router
	http   *http.Server
}

// New builds a Server from the given config. The logger must not be nil.
func New(cfg *Config, log *slog.Logger) *Server {
	s := &Server{cfg: cfg, log: log}

	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHarness).Methods(http.MethodGet)
	r.HandleFunc("/media/{name}", s.handleMedia).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.Use(instrument, s.logRequests)
	s.router = r

	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening. It blocks until the listener fails or Shutdown is
// called; a clean shutdown returns nil.
func (s *Server) Start() error {
	s.log.Info("dev server listening", "addr", s.cfg.Addr, "media_dir", s.cfg.MediaDir)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHarness(w http.ResponseWriter, r *http.Request) {
	media, err := s.listMedia()
	if err != nil {
		s.log.Warn("failed to list media directory", "dir", s.cfg.MediaDir, "err", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		HLSScriptURL string
		Media        []string
	}{s.cfg.HLSScriptURL, media}
	if err := harnessTemplate.Execute(w, data); err != nil {
		s.log.Error("failed to render harness page", "err", err)
	}
}

func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		http.Error(w, "invalid media name", http.StatusBadRequest)
		return
	}
	// http.ServeFile provides Range and conditional request handling, which
	// the browser relies on when seeking.
	http.ServeFile(w, r, filepath.Join(s.cfg.MediaDir, name))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) listMedia() ([]string, error) {
	entries, err := os.ReadDir(s.cfg.MediaDir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
