package handlers

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"media-gallery/internal/autoscroll"
	"media-gallery/internal/carousel"
	"media-gallery/internal/media"
	"media-gallery/internal/session"
	"media-gallery/internal/settings"
	"media-gallery/internal/startup"
	"media-gallery/internal/theme"

	"github.com/gorilla/mux"
)

// UploadRequest names the directory to ingest.
type UploadRequest struct {
	Path string `json:"path"`
}

// Upload ingests a directory and replaces the gallery with it. A failed
// ingestion leaves the current gallery in place.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	var req UploadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		writeJSONError(w, "Path is required", http.StatusBadRequest)
		return
	}

	h.ingesting.Add(1)
	start := time.Now()
	err := h.session.LoadPath(r.Context(), req.Path)
	h.ingesting.Add(-1)
	h.recordIngest(err)
	startup.LogGalleryLoad(req.Path, time.Since(start), err)

	if err != nil {
		writeError(w, err)
		return
	}
	writeJSONOK(w, h.session.State())
}

// NavigateHome unloads the gallery.
func (h *Handlers) NavigateHome(w http.ResponseWriter, _ *http.Request) {
	h.session.NavigateHome()
	writeJSONOK(w, h.session.State())
}

// GetState returns the session state.
func (h *Handlers) GetState(w http.ResponseWriter, _ *http.Request) {
	writeJSONOK(w, h.session.State())
}

// TreeNode is the JSON form of a tree entry. Content is never included.
type TreeNode struct {
	Name     string      `json:"name"`
	Kind     string      `json:"kind"`
	MimeType string      `json:"mimeType,omitempty"`
	Size     int64       `json:"size,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// buildTree converts root without recursion: Walk visits in pre-order, so
// the parent of an entry at depth d is the last node seen at depth d-1.
func buildTree(root *media.Directory) *TreeNode {
	var top *TreeNode
	var parents []*TreeNode
	_ = media.Walk(root, func(_ string, depth int, e media.Entry) error {
		node := &TreeNode{Name: e.Name()}
		switch e := e.(type) {
		case *media.FileLeaf:
			node.Kind = string(e.Kind())
			node.MimeType = e.MimeType()
			node.Size = e.Size()
		case *media.Directory:
			node.Kind = "directory"
		}

		parents = parents[:depth]
		if depth == 0 {
			top = node
		} else {
			parent := parents[depth-1]
			parent.Children = append(parent.Children, node)
		}
		parents = append(parents, node)
		return nil
	})
	return top
}

// GetTree returns the loaded tree without file contents.
func (h *Handlers) GetTree(w http.ResponseWriter, _ *http.Request) {
	tree := h.session.Tree()
	if tree == nil {
		writeJSONError(w, "No gallery loaded", http.StatusConflict)
		return
	}
	writeJSONOK(w, buildTree(tree))
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

// GetGrid returns a window of grid cells.
func (h *Handlers) GetGrid(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.session.Grid(offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSONOK(w, page)
}

// ColumnsRequest sets the grid width.
type ColumnsRequest struct {
	Columns int `json:"columns"`
}

// SetColumns changes the grid width.
func (h *Handlers) SetColumns(w http.ResponseWriter, r *http.Request) {
	var req ColumnsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.session.SetColumns(req.Columns); err != nil {
		writeError(w, err)
		return
	}
	writeJSONOK(w, h.session.State())
}

// Shuffle displays the gallery in a new random order.
func (h *Handlers) Shuffle(w http.ResponseWriter, _ *http.Request) {
	if err := h.session.Shuffle(); err != nil {
		writeError(w, err)
		return
	}
	writeJSONOK(w, h.session.State())
}

// Unshuffle restores the source order.
func (h *Handlers) Unshuffle(w http.ResponseWriter, _ *http.Request) {
	if err := h.session.ResetOrder(); err != nil {
		writeError(w, err)
		return
	}
	writeJSONOK(w, h.session.State())
}

// AutoscrollRequest toggles autoscroll.
type AutoscrollRequest struct {
	Enabled bool `json:"enabled"`
}

// SetAutoscroll starts or stops autoscroll.
func (h *Handlers) SetAutoscroll(w http.ResponseWriter, r *http.Request) {
	var req AutoscrollRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.session.SetAutoscroll(req.Enabled); err != nil {
		writeError(w, err)
		return
	}
	writeJSONOK(w, h.session.State())
}

// positionSetter is a viewport whose dimensions a client can report.
type positionSetter interface {
	Set(autoscroll.Position)
}

// GetViewport returns the position autoscroll drives.
func (h *Handlers) GetViewport(w http.ResponseWriter, _ *http.Request) {
	writeJSONOK(w, h.session.Viewport().Position())
}

// PutViewport records the client's viewport dimensions and offset.
func (h *Handlers) PutViewport(w http.ResponseWriter, r *http.Request) {
	vp, ok := h.session.Viewport().(positionSetter)
	if !ok {
		writeJSONError(w, "Viewport is not client driven", http.StatusNotImplemented)
		return
	}
	var pos autoscroll.Position
	if err := decodeJSON(r, &pos); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	vp.Set(pos)
	writeJSONOK(w, h.session.Viewport().Position())
}

// PatchSettings applies a partial settings update.
func (h *Handlers) PatchSettings(w http.ResponseWriter, r *http.Request) {
	var patch settings.Patch
	if err := decodeJSON(r, &patch); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.session.UpdateSettings(patch); err != nil {
		writeError(w, err)
		return
	}
	writeJSONOK(w, h.session.Settings())
}

// ThemeRequest sets the theme.
type ThemeRequest struct {
	Theme string `json:"theme"`
}

// SetTheme changes the theme.
func (h *Handlers) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	t, err := theme.Parse(req.Theme)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.session.UpdateSettings(settings.Patch{Theme: &t}); err != nil {
		writeError(w, err)
		return
	}
	writeJSONOK(w, h.session.Settings())
}

// CarouselRequest opens the carousel on an index position.
type CarouselRequest struct {
	Index int `json:"index"`
}

// OpenCarousel opens the carousel.
func (h *Handlers) OpenCarousel(w http.ResponseWriter, r *http.Request) {
	var req CarouselRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.session.OpenCarousel(req.Index); err != nil {
		writeError(w, err)
		return
	}
	writeJSONOK(w, h.session.CarouselState())
}

// GetCarousel returns the carousel state.
func (h *Handlers) GetCarousel(w http.ResponseWriter, _ *http.Request) {
	writeJSONOK(w, h.session.CarouselState())
}

// CarouselAction runs next, prev, close, play or pause on the carousel.
func (h *Handlers) CarouselAction(w http.ResponseWriter, r *http.Request) {
	var err error
	switch mux.Vars(r)["action"] {
	case "next":
		_, err = h.session.CarouselNext()
	case "prev":
		_, err = h.session.CarouselPrev()
	case "close":
		err = h.session.CloseCarousel()
	case "play":
		_, err = h.session.CarouselPlay()
	case "pause":
		err = h.session.CarouselPause()
	default:
		err = fmt.Errorf("carousel action %q: %w", mux.Vars(r)["action"], errNotFound)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSONOK(w, h.session.CarouselState())
}

// KeyRequest is a key press for the carousel.
type KeyRequest struct {
	Key string `json:"key"`
}

// PressKey delivers a key press to the carousel.
func (h *Handlers) PressKey(w http.ResponseWriter, r *http.Request) {
	var req KeyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	switch req.Key {
	case carousel.KeyLeft, carousel.KeyRight, carousel.KeyEscape:
	default:
		writeJSONError(w, fmt.Sprintf("Unsupported key %q", req.Key), http.StatusBadRequest)
		return
	}
	if !h.session.PressKey(req.Key) {
		writeError(w, session.ErrCarouselClosed)
		return
	}
	writeJSONOK(w, h.session.CarouselState())
}

func isLoopback(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// GetBlob serves the bytes behind a live render handle. Handles are only
// reachable from the local machine.
func (h *Handlers) GetBlob(w http.ResponseWriter, r *http.Request) {
	if !isLoopback(r.RemoteAddr) {
		writeJSONError(w, "Forbidden", http.StatusForbidden)
		return
	}

	leaf, ok := h.session.Lookup(mux.Vars(r)["handle"])
	if !ok {
		writeJSONError(w, "Handle not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", leaf.MimeType())
	w.Header().Set("ETag", `"`+leaf.Checksum()+`"`)
	w.Header().Set("Cache-Control", "private, no-cache")
	http.ServeContent(w, r, leaf.Name(), time.Time{}, leaf.Reader())
}
