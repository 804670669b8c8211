package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"media-gallery/internal/autoscroll"
	"media-gallery/internal/media"
	"media-gallery/internal/session"
	"media-gallery/internal/settings"

	"github.com/gorilla/mux"
)

func TestUpload(t *testing.T) {
	h := newTestHandlers(t)
	dir := writeGallery(t)

	w := doJSON(t, h.Upload, http.MethodPost, "/api/gallery", UploadRequest{Path: dir}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Upload status = %d, body %s", w.Code, w.Body.String())
	}
	state := decode[session.State](t, w)
	if !state.Loaded || state.RootName != filepath.Base(dir) {
		t.Errorf("Upload state = %+v", state)
	}
	if state.Stats.Files != 5 || state.Stats.Directories != 1 {
		t.Errorf("Upload stats = %+v, want 5 files and 1 directory", state.Stats)
	}
	if lastError, lastLoad := h.ingestStatus(); lastError != "" || lastLoad.IsZero() {
		t.Errorf("ingestStatus() = %q, %v", lastError, lastLoad)
	}
}

func TestUploadErrors(t *testing.T) {
	dir := writeGallery(t)

	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"missing path", UploadRequest{}, http.StatusBadRequest},
		{"unknown field", map[string]string{"dir": dir}, http.StatusBadRequest},
		{"file root", UploadRequest{Path: filepath.Join(dir, "a.png")}, http.StatusBadRequest},
		{"missing root", UploadRequest{Path: filepath.Join(dir, "nope")}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandlers(t)
			w := doJSON(t, h.Upload, http.MethodPost, "/api/gallery", tt.body, nil)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if h.session.Tree() != nil {
				t.Error("failed upload must not load a gallery")
			}
		})
	}
}

func TestRequiresGallery(t *testing.T) {
	h := newTestHandlers(t)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		method  string
		body    interface{}
		vars    map[string]string
	}{
		{"tree", h.GetTree, http.MethodGet, nil, nil},
		{"grid", h.GetGrid, http.MethodGet, nil, nil},
		{"shuffle", h.Shuffle, http.MethodPost, nil, nil},
		{"unshuffle", h.Unshuffle, http.MethodPost, nil, nil},
		{"autoscroll", h.SetAutoscroll, http.MethodPut, AutoscrollRequest{Enabled: true}, nil},
		{"carousel", h.OpenCarousel, http.MethodPost, CarouselRequest{Index: 0}, nil},
		{"carousel next", h.CarouselAction, http.MethodPost, nil, map[string]string{"action": "next"}},
		{"key", h.PressKey, http.MethodPost, KeyRequest{Key: "ArrowRight"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, tt.handler, tt.method, "/api/x", tt.body, tt.vars)
			if w.Code != http.StatusConflict {
				t.Errorf("status = %d, want 409 (%s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestGetTree(t *testing.T) {
	h := loadedHandlers(t)

	w := doJSON(t, h.GetTree, http.MethodGet, "/api/tree", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GetTree status = %d", w.Code)
	}
	root := decode[TreeNode](t, w)
	if root.Kind != "directory" || len(root.Children) != 5 {
		t.Fatalf("root = %+v, want a directory with 5 children", root)
	}

	var trip *TreeNode
	for _, c := range root.Children {
		if c.Name == "trip" {
			trip = c
		}
	}
	if trip == nil || len(trip.Children) != 1 || trip.Children[0].Name != "c.png" {
		t.Errorf("trip = %+v, want one child c.png", trip)
	}
}

func TestBuildTreeNested(t *testing.T) {
	t.Parallel()

	deep := media.NewDirectory("c", []media.Entry{media.NewFileLeaf("x.png", "image/png", 1, []byte("x"))})
	root := media.NewDirectory("a", []media.Entry{
		media.NewDirectory("b", []media.Entry{deep}),
		media.NewFileLeaf("y.mp4", "video/mp4", 1, []byte("y")),
	})

	got := buildTree(root)
	if got.Name != "a" || len(got.Children) != 2 {
		t.Fatalf("root = %+v", got)
	}
	b := got.Children[0]
	if b.Name != "b" || len(b.Children) != 1 || b.Children[0].Name != "c" {
		t.Fatalf("b = %+v", b)
	}
	if x := b.Children[0].Children[0]; x.Name != "x.png" || x.Kind != "image" || x.MimeType != "image/png" {
		t.Errorf("x = %+v", x)
	}
	if y := got.Children[1]; y.Name != "y.mp4" || y.Kind != "video" {
		t.Errorf("y = %+v", y)
	}
}

func TestGetGrid(t *testing.T) {
	h := loadedHandlers(t)

	w := doJSON(t, h.GetGrid, http.MethodGet, "/api/grid?offset=1&limit=2", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GetGrid status = %d (%s)", w.Code, w.Body.String())
	}
	page := decode[session.GridPage](t, w)
	if page.Total != 4 {
		t.Errorf("Total = %d, want 4 (three media files and one placeholder)", page.Total)
	}
	if page.Offset != 1 || len(page.Cells) != 2 {
		t.Errorf("page = %+v, want 2 cells from offset 1", page)
	}
	if page.Columns != session.DefaultColumns {
		t.Errorf("Columns = %d", page.Columns)
	}

	bad := doJSON(t, h.GetGrid, http.MethodGet, "/api/grid?offset=x", nil, nil)
	if bad.Code != http.StatusBadRequest {
		t.Errorf("invalid offset status = %d, want 400", bad.Code)
	}
}

func TestSetColumns(t *testing.T) {
	h := newTestHandlers(t)

	w := doJSON(t, h.SetColumns, http.MethodPut, "/api/columns", ColumnsRequest{Columns: 4}, nil)
	if w.Code != http.StatusOK || decode[session.State](t, w).Columns != 4 {
		t.Errorf("SetColumns(4) status = %d", w.Code)
	}

	w = doJSON(t, h.SetColumns, http.MethodPut, "/api/columns", ColumnsRequest{Columns: 5}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("SetColumns(5) status = %d, want 400", w.Code)
	}
}

func TestShuffleAndUnshuffle(t *testing.T) {
	h := loadedHandlers(t)

	w := doJSON(t, h.Shuffle, http.MethodPost, "/api/shuffle", nil, nil)
	if w.Code != http.StatusOK || !decode[session.State](t, w).Shuffled {
		t.Fatalf("Shuffle status = %d", w.Code)
	}
	w = doJSON(t, h.Unshuffle, http.MethodPost, "/api/unshuffle", nil, nil)
	if w.Code != http.StatusOK || decode[session.State](t, w).Shuffled {
		t.Errorf("Unshuffle status = %d", w.Code)
	}
}

func TestViewport(t *testing.T) {
	h := newTestHandlers(t)

	pos := autoscroll.Position{Height: 100, Extent: 400, Offset: 50}
	w := doJSON(t, h.PutViewport, http.MethodPut, "/api/viewport", pos, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("PutViewport status = %d", w.Code)
	}

	w = doJSON(t, h.GetViewport, http.MethodGet, "/api/viewport", nil, nil)
	if got := decode[autoscroll.Position](t, w); got != pos {
		t.Errorf("GetViewport() = %+v, want %+v", got, pos)
	}
}

func TestSettingsEndpoints(t *testing.T) {
	h := newTestHandlers(t)

	w := doJSON(t, h.PatchSettings, http.MethodPatch, "/api/settings", map[string]interface{}{"autoscrollSpeed": 80}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("PatchSettings status = %d (%s)", w.Code, w.Body.String())
	}
	if got := decode[settings.State](t, w); got.AutoscrollSpeed != 80 {
		t.Errorf("AutoscrollSpeed = %d, want 80", got.AutoscrollSpeed)
	}

	w = doJSON(t, h.SetTheme, http.MethodPut, "/api/theme", ThemeRequest{Theme: "dark"}, nil)
	if w.Code != http.StatusOK || decode[settings.State](t, w).Theme != "dark" {
		t.Errorf("SetTheme(dark) status = %d", w.Code)
	}

	w = doJSON(t, h.SetTheme, http.MethodPut, "/api/theme", ThemeRequest{Theme: "sepia"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("SetTheme(sepia) status = %d, want 400", w.Code)
	}
}

func firstMediaPosition(t *testing.T, h *Handlers) int {
	t.Helper()
	page, err := h.session.Grid(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range page.Cells {
		if !c.Placeholder {
			return c.Position
		}
	}
	t.Fatal("no media cell in grid")
	return -1
}

func TestCarouselFlow(t *testing.T) {
	h := loadedHandlers(t)
	pos := firstMediaPosition(t, h)

	w := doJSON(t, h.OpenCarousel, http.MethodPost, "/api/carousel", CarouselRequest{Index: pos}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("OpenCarousel status = %d (%s)", w.Code, w.Body.String())
	}
	opened := decode[session.CarouselState](t, w)
	if !opened.Open || opened.Position != pos || opened.Total != 4 {
		t.Fatalf("opened = %+v", opened)
	}

	w = doJSON(t, h.CarouselAction, http.MethodPost, "/api/carousel/next", nil, map[string]string{"action": "next"})
	if got := decode[session.CarouselState](t, w); got.Slot != opened.Slot+1 {
		t.Errorf("next slot = %d, want %d", got.Slot, opened.Slot+1)
	}

	w = doJSON(t, h.PressKey, http.MethodPost, "/api/carousel/key", KeyRequest{Key: "ArrowLeft"}, nil)
	if got := decode[session.CarouselState](t, w); got.Slot != opened.Slot {
		t.Errorf("ArrowLeft slot = %d, want %d", got.Slot, opened.Slot)
	}

	w = doJSON(t, h.CarouselAction, http.MethodPost, "/api/carousel/spin", nil, map[string]string{"action": "spin"})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown action status = %d, want 404", w.Code)
	}

	w = doJSON(t, h.PressKey, http.MethodPost, "/api/carousel/key", KeyRequest{Key: "Enter"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unsupported key status = %d, want 400", w.Code)
	}

	w = doJSON(t, h.PressKey, http.MethodPost, "/api/carousel/key", KeyRequest{Key: "Escape"}, nil)
	if w.Code != http.StatusOK || decode[session.CarouselState](t, w).Open {
		t.Errorf("Escape status = %d, carousel should be closed", w.Code)
	}

	w = doJSON(t, h.CarouselAction, http.MethodPost, "/api/carousel/close", nil, map[string]string{"action": "close"})
	if w.Code != http.StatusConflict {
		t.Errorf("close on closed carousel status = %d, want 409", w.Code)
	}
}

func TestOpenCarouselOutOfRange(t *testing.T) {
	h := loadedHandlers(t)

	w := doJSON(t, h.OpenCarousel, http.MethodPost, "/api/carousel", CarouselRequest{Index: 99}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetBlob(t *testing.T) {
	h := loadedHandlers(t)
	page, err := h.session.Grid(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	var cell session.GridCell
	for _, c := range page.Cells {
		if c.Name == "a.png" {
			cell = c
		}
	}
	if cell.Handle == "" {
		t.Fatal("a.png has no render handle")
	}
	vars := map[string]string{"handle": cell.Handle}

	w := doJSON(t, h.GetBlob, http.MethodGet, "/api/blob/"+cell.Handle, nil, vars)
	if w.Code != http.StatusOK {
		t.Fatalf("GetBlob status = %d", w.Code)
	}
	if w.Body.String() != "png-a" {
		t.Errorf("body = %q, want file contents", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/blob/"+cell.Handle, nil)
	req.RemoteAddr = "127.0.0.1:40000"
	req.Header.Set("If-None-Match", etag)
	rec := httptest.NewRecorder()
	h.GetBlob(rec, mux.SetURLVars(req, vars))
	if rec.Code != http.StatusNotModified {
		t.Errorf("conditional GetBlob status = %d, want 304", rec.Code)
	}

	remote := httptest.NewRequest(http.MethodGet, "/api/blob/"+cell.Handle, nil)
	remote.RemoteAddr = "192.0.2.7:5000"
	rec = httptest.NewRecorder()
	h.GetBlob(rec, mux.SetURLVars(remote, vars))
	if rec.Code != http.StatusForbidden {
		t.Errorf("remote GetBlob status = %d, want 403", rec.Code)
	}

	w = doJSON(t, h.GetBlob, http.MethodGet, "/api/blob/unknown", nil, map[string]string{"handle": "unknown"})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown handle status = %d, want 404", w.Code)
	}
}

func TestNavigateHome(t *testing.T) {
	h := loadedHandlers(t)

	w := doJSON(t, h.NavigateHome, http.MethodPost, "/api/home", nil, nil)
	if w.Code != http.StatusOK || decode[session.State](t, w).Loaded {
		t.Errorf("NavigateHome status = %d, gallery should be unloaded", w.Code)
	}
}

func TestIsLoopback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		addr string
		want bool
	}{
		{"127.0.0.1:80", true},
		{"[::1]:80", true},
		{"::1", true},
		{"10.1.2.3:80", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		if got := isLoopback(tt.addr); got != tt.want {
			t.Errorf("isLoopback(%q) = %v, want %v", tt.addr, got, tt.want)
		}
	}
}
