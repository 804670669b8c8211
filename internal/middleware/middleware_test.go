package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"media-gallery/internal/logging"
)

func TestNewResponseWriter(t *testing.T) {
	w := httptest.NewRecorder()
	rw := newResponseWriter(w)

	if rw.statusCode != http.StatusOK {
		t.Errorf("Expected default status code 200, got %d", rw.statusCode)
	}
	if rw.bytesWritten != 0 {
		t.Errorf("Expected bytesWritten to be 0, got %d", rw.bytesWritten)
	}
	if rw.wroteHeader {
		t.Error("Expected wroteHeader to be false initially")
	}
}

func TestResponseWriterWriteHeader(t *testing.T) {
	w := httptest.NewRecorder()
	rw := newResponseWriter(w)

	rw.WriteHeader(http.StatusConflict)
	rw.WriteHeader(http.StatusInternalServerError)

	if rw.statusCode != http.StatusConflict {
		t.Errorf("Expected first status code to stick, got %d", rw.statusCode)
	}
	if w.Code != http.StatusConflict {
		t.Errorf("Expected recorder status 409, got %d", w.Code)
	}
}

func TestResponseWriterWrite(t *testing.T) {
	w := httptest.NewRecorder()
	rw := newResponseWriter(w)

	data := []byte(`{"loaded":true}`)
	n, err := rw.Write(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n != len(data) || rw.bytesWritten != int64(len(data)) {
		t.Errorf("Expected %d bytes written, got n=%d total=%d", len(data), n, rw.bytesWritten)
	}
	if !rw.wroteHeader {
		t.Error("Expected wroteHeader to be true after Write")
	}
}

func TestSanitizeLogField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/api/state", "/api/state"},
		{"a\nb\rc", "a b c"},
		{"esc\x1b[31m", "esc[31m"},
		{"nul\x00", "nul"},
		{"tab\tok", "tab\tok"},
	}

	for _, tt := range tests {
		if got := sanitizeLogField(tt.in); got != tt.want {
			t.Errorf("sanitizeLogField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShouldSkip(t *testing.T) {
	def := DefaultLoggingConfig()
	verbose := LoggingConfig{LogHealthChecks: true, LogBlobs: true}

	tests := []struct {
		name   string
		path   string
		config LoggingConfig
		want   bool
	}{
		{"api default", "/api/state", def, false},
		{"metrics default", "/metrics", def, true},
		{"health default", "/healthz", def, true},
		{"blob default", "/api/blob/3f1c", def, true},
		{"health verbose", "/healthz", verbose, false},
		{"blob verbose", "/api/blob/3f1c", verbose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldSkip(tt.path, tt.config); got != tt.want {
				t.Errorf("shouldSkip(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"remote addr", nil, "127.0.0.1:5123", "127.0.0.1"},
		{"forwarded list", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "127.0.0.1:1", "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": "10.0.0.9"}, "127.0.0.1:1", "10.0.0.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	defer logging.SetOutput(os.Stderr)

	handler := Logger(DefaultLoggingConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tree" {
			w.WriteHeader(http.StatusConflict)
		}
		_, _ = w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/api/tree", "/healthz"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := buf.String()
	if !strings.Contains(out, "/api/tree") || !strings.Contains(out, "409") {
		t.Errorf("Expected request line for /api/tree with status, got %q", out)
	}
	if !strings.Contains(out, "http") {
		t.Errorf("Expected http component in output, got %q", out)
	}
	if strings.Contains(out, "/healthz") {
		t.Errorf("Health checks must be skipped by default, got %q", out)
	}
}

func TestMetricsResponseWriterWriteHeader(t *testing.T) {
	w := httptest.NewRecorder()
	rw := newMetricsResponseWriter(w)

	if rw.statusCode != http.StatusOK {
		t.Errorf("Expected default status 200, got %d", rw.statusCode)
	}
	rw.WriteHeader(http.StatusServiceUnavailable)
	if rw.statusCode != http.StatusServiceUnavailable || w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 recorded, got %d / %d", rw.statusCode, w.Code)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/state", "/api/state"},
		{"/api/carousel/next", "/api/carousel/next"},
		{"/api/blob/8c5f2b7e-1e4a-4d0e-9b9a-2f0f1f3b9d11", "/api/blob/{handle}"},
		{"/api/blob/not-a-uuid", "/api/blob/not-a-uuid"},
		{"/a/b/c/d/e/f", "/a/b/c/{path}"},
		{"/", "/"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestMetricsMiddlewareSkipPaths(t *testing.T) {
	called := 0
	handler := Metrics(DefaultMetricsConfig())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called++
		w.WriteHeader(http.StatusNoContent)
	}))

	for _, path := range []string{"/metrics", "/healthz", "/api/state"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNoContent {
			t.Errorf("%s: expected 204, got %d", path, rec.Code)
		}
	}
	if called != 3 {
		t.Errorf("Expected every request to reach the handler, got %d", called)
	}
}
