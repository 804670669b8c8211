package media

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io/fs"

	"media-gallery/internal/mediatypes"

	"golang.org/x/crypto/blake2b"
)

// Entry is one node of a media tree. It is implemented only by *FileLeaf and
// *Directory; consumers switch over both:
//
//	switch e := entry.(type) {
//	case *media.FileLeaf:
//	case *media.Directory:
//	}
type Entry interface {
	Name() string
	entry()
}

// FileLeaf is a file with its content fully loaded in memory.
// A FileLeaf is immutable once created.
type FileLeaf struct {
	name     string
	mimeType string
	size     int64
	data     []byte
	checksum string
}

// NewFileLeaf creates a leaf that owns data. The caller must not modify data
// afterwards.
func NewFileLeaf(name, mimeType string, size int64, data []byte) *FileLeaf {
	sum := blake2b.Sum256(data)
	return &FileLeaf{
		name:     name,
		mimeType: mimeType,
		size:     size,
		data:     data,
		checksum: hex.EncodeToString(sum[:]),
	}
}

func (f *FileLeaf) entry() {}

// Name returns the file name.
func (f *FileLeaf) Name() string { return f.name }

// MimeType returns the MIME type reported by the source.
func (f *FileLeaf) MimeType() string { return f.mimeType }

// Size returns the size reported by the source in bytes.
func (f *FileLeaf) Size() int64 { return f.size }

// Kind classifies the leaf by its MIME type.
func (f *FileLeaf) Kind() mediatypes.Kind { return mediatypes.Classify(f.mimeType) }

// Checksum returns the hex BLAKE2b-256 digest of the content.
func (f *FileLeaf) Checksum() string { return f.checksum }

// Reader returns a fresh read-only view of the content.
func (f *FileLeaf) Reader() *bytes.Reader { return bytes.NewReader(f.data) }

// Directory is a named, ordered list of entries. Child order is the order in
// which the source enumerated them.
type Directory struct {
	name     string
	children []Entry
}

// NewDirectory creates a directory node holding a copy of children.
func NewDirectory(name string, children []Entry) *Directory {
	c := make([]Entry, len(children))
	copy(c, children)
	return &Directory{name: name, children: c}
}

func (d *Directory) entry() {}

// Name returns the directory name.
func (d *Directory) Name() string { return d.name }

// Len returns the number of direct children.
func (d *Directory) Len() int { return len(d.children) }

// Child returns the i-th direct child.
func (d *Directory) Child(i int) Entry { return d.children[i] }

// Children returns a copy of the direct children.
func (d *Directory) Children() []Entry {
	c := make([]Entry, len(d.children))
	copy(c, d.children)
	return c
}

// WalkFunc is called for every entry visited by Walk. path is relative to
// the walk root ("" for the root itself). Returning fs.SkipDir from a
// directory skips its children; any other error stops the walk.
type WalkFunc func(path string, depth int, e Entry) error

type walkFrame struct {
	path  string
	depth int
	entry Entry
}

// Walk visits root and its descendants in pre-order, children in order.
// It uses an explicit stack so arbitrarily deep trees cannot exhaust the
// goroutine stack.
func Walk(root Entry, fn WalkFunc) error {
	if root == nil {
		return nil
	}

	stack := []walkFrame{{path: "", depth: 0, entry: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		err := fn(top.path, top.depth, top.entry)
		if err != nil {
			if errors.Is(err, fs.SkipDir) {
				continue
			}
			return err
		}

		dir, ok := top.entry.(*Directory)
		if !ok {
			continue
		}
		// Push in reverse so the first child is visited first.
		for i := len(dir.children) - 1; i >= 0; i-- {
			child := dir.children[i]
			stack = append(stack, walkFrame{
				path:  joinPath(top.path, child.Name()),
				depth: top.depth + 1,
				entry: child,
			})
		}
	}
	return nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// Stats summarizes a tree.
type Stats struct {
	Files       int   `json:"files"`
	Directories int   `json:"directories"`
	Images      int   `json:"images"`
	Videos      int   `json:"videos"`
	Other       int   `json:"other"`
	Bytes       int64 `json:"bytes"`
}

// Count returns statistics for everything below root. The root itself is not
// counted as a directory.
func Count(root Entry) Stats {
	var s Stats
	_ = Walk(root, func(path string, _ int, e Entry) error {
		switch e := e.(type) {
		case *FileLeaf:
			s.Files++
			s.Bytes += e.size
			switch e.Kind() {
			case mediatypes.KindImage:
				s.Images++
			case mediatypes.KindVideo:
				s.Videos++
			default:
				s.Other++
			}
		case *Directory:
			if path != "" {
				s.Directories++
			}
		}
		return nil
	})
	return s
}
