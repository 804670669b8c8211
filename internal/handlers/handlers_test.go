package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"media-gallery/internal/session"

	"github.com/gorilla/mux"
)

// writeGallery creates dir/{a.png, b.jpg, clip.mp4, notes.txt, trip/c.png}.
func writeGallery(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.png":      "png-a",
		"b.jpg":      "jpeg-b",
		"clip.mp4":   "mp4-clip",
		"notes.txt":  "notes",
		"trip/c.png": "png-c",
	}
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	s := session.New(session.Options{})
	t.Cleanup(s.Close)
	return New(s)
}

func loadedHandlers(t *testing.T) *Handlers {
	t.Helper()
	h := newTestHandlers(t)
	if err := h.session.LoadPath(context.Background(), writeGallery(t)); err != nil {
		t.Fatalf("LoadPath() error = %v", err)
	}
	return h
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, target string, body interface{}, vars map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.RemoteAddr = "127.0.0.1:40000"
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return v
}
