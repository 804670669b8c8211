package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"media-gallery/internal/handlers"
	"media-gallery/internal/session"
	"media-gallery/internal/startup"

	"github.com/gorilla/mux"
)

func newTestRouter(t *testing.T, metricsEnabled bool) (*mux.Router, *session.Session) {
	t.Helper()
	s := session.New(session.Options{})
	t.Cleanup(s.Close)
	return setupRouter(handlers.New(s), metricsEnabled), s
}

func serve(h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.RemoteAddr = "127.0.0.1:50000"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouterHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, true)

	for _, path := range []string{"/health", "/healthz", "/livez", "/readyz", "/version", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			if w := serve(router, http.MethodGet, path, nil); w.Code != http.StatusOK {
				t.Errorf("GET %s = %d, want 200", path, w.Code)
			}
		})
	}
}

func TestRouterMetricsDisabled(t *testing.T) {
	router, _ := newTestRouter(t, false)

	if w := serve(router, http.MethodGet, "/metrics", nil); w.Code != http.StatusNotFound {
		t.Errorf("GET /metrics = %d, want 404 when metrics are disabled", w.Code)
	}
}

func TestRouterRoutes(t *testing.T) {
	router, _ := newTestRouter(t, true)

	routes, err := startup.GetRoutes(router)
	if err != nil {
		t.Fatal(err)
	}
	have := make(map[startup.RouteInfo]bool, len(routes))
	for _, r := range routes {
		have[r] = true
	}

	want := []startup.RouteInfo{
		{Method: "POST", Path: "/api/upload"},
		{Method: "POST", Path: "/api/home"},
		{Method: "GET", Path: "/api/state"},
		{Method: "GET", Path: "/api/tree"},
		{Method: "GET", Path: "/api/grid"},
		{Method: "POST", Path: "/api/columns"},
		{Method: "POST", Path: "/api/shuffle"},
		{Method: "POST", Path: "/api/unshuffle"},
		{Method: "POST", Path: "/api/autoscroll"},
		{Method: "GET", Path: "/api/viewport"},
		{Method: "PUT", Path: "/api/viewport"},
		{Method: "PATCH", Path: "/api/settings"},
		{Method: "POST", Path: "/api/theme"},
		{Method: "POST", Path: "/api/carousel"},
		{Method: "GET", Path: "/api/carousel"},
		{Method: "POST", Path: "/api/carousel/key"},
		{Method: "POST", Path: "/api/carousel/{action}"},
		{Method: "GET", Path: "/api/blob/{handle}"},
	}
	for _, r := range want {
		if !have[r] {
			t.Errorf("missing route %s %s", r.Method, r.Path)
		}
	}
}

func TestRouterGalleryFlow(t *testing.T) {
	router, s := newTestRouter(t, false)

	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if w := serve(router, http.MethodPost, "/api/upload", map[string]string{"path": dir}); w.Code != http.StatusOK {
		t.Fatalf("upload = %d (%s)", w.Code, w.Body.String())
	}
	if s.Tree() == nil {
		t.Fatal("upload did not load the gallery")
	}

	if w := serve(router, http.MethodPost, "/api/carousel", map[string]int{"index": 0}); w.Code != http.StatusOK {
		t.Fatalf("open carousel = %d (%s)", w.Code, w.Body.String())
	}
	if w := serve(router, http.MethodPost, "/api/carousel/key", map[string]string{"key": "ArrowRight"}); w.Code != http.StatusOK {
		t.Errorf("key = %d (%s)", w.Code, w.Body.String())
	}
	if got := s.CarouselState().Slot; got != 1 {
		t.Errorf("slot after ArrowRight = %d, want 1", got)
	}
	if w := serve(router, http.MethodPost, "/api/carousel/close", nil); w.Code != http.StatusOK {
		t.Errorf("close = %d (%s)", w.Code, w.Body.String())
	}
	if w := serve(router, http.MethodPost, "/api/home", nil); w.Code != http.StatusOK || s.Tree() != nil {
		t.Errorf("home = %d, gallery should be unloaded", w.Code)
	}
}

func TestWrapHandler(t *testing.T) {
	router, _ := newTestRouter(t, true)
	handler := wrapHandler(router, &startup.Config{MetricsEnabled: true, LogHTTP: true})

	if w := serve(handler, http.MethodGet, "/api/state", nil); w.Code != http.StatusOK {
		t.Errorf("GET /api/state through middleware = %d, want 200", w.Code)
	}
}
