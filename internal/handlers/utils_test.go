package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"media-gallery/internal/ingest"
	"media-gallery/internal/session"
	"media-gallery/internal/theme"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid drop target", ingest.ErrInvalidDropTarget, http.StatusBadRequest},
		{"invalid columns", session.ErrInvalidColumns, http.StatusBadRequest},
		{"out of range", session.ErrPositionOutOfRange, http.StatusBadRequest},
		{"not navigable", session.ErrNotNavigable, http.StatusBadRequest},
		{"invalid theme", fmt.Errorf("settings: %w", theme.ErrInvalidTheme), http.StatusBadRequest},
		{"not found", errNotFound, http.StatusNotFound},
		{"no tree", session.ErrNoTree, http.StatusConflict},
		{"carousel closed", session.ErrCarouselClosed, http.StatusConflict},
		{"ingestion", &ingest.IngestionError{Path: "x", Op: "read", Err: errors.New("eof")}, http.StatusUnprocessableEntity},
		{"closed", session.ErrClosed, http.StatusServiceUnavailable},
		{"canceled", context.Canceled, http.StatusServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	writeError(w, session.ErrNoTree)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if body := decode[map[string]string](t, w); body["error"] != session.ErrNoTree.Error() {
		t.Errorf("body = %v", body)
	}
}

func TestWriteJSONOK(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	writeJSONOK(w, map[string]int{"columns": 3})

	if got := strings.TrimSpace(w.Body.String()); got != `{"columns":3}` {
		t.Errorf("body = %q", got)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control = %q", cc)
	}
}

func TestWriteJSONStatus(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	writeJSONStatus(w, "ready")

	if got := strings.TrimSpace(w.Body.String()); got != `{"status":"ready"}` {
		t.Errorf("body = %q", got)
	}
}

func TestWriteJSONUnencodable(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	writeJSON(w, make(chan int))
	if w.Body.Len() != 0 {
		t.Errorf("expected no body for an unencodable value, got %q", w.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"columns": 2}`, false},
		{"unknown field", `{"columns": 2, "rows": 1}`, true},
		{"malformed", `{"columns":`, true},
		{"empty", ``, true},
		{"oversized", `{"columns": 2` + strings.Repeat(" ", maxBodyBytes) + `}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/columns", strings.NewReader(tt.body))
			var v ColumnsRequest
			err := decodeJSON(req, &v)
			if (err != nil) != tt.wantErr {
				t.Errorf("decodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && v.Columns != 2 {
				t.Errorf("Columns = %d, want 2", v.Columns)
			}
		})
	}
}
