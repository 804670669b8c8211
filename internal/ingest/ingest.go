package ingest

import (
	"context"
	"fmt"
	"path"
	"slices"
	"time"

	"media-gallery/internal/logging"
	"media-gallery/internal/media"
	"media-gallery/internal/metrics"

	"golang.org/x/sync/errgroup"
)

// DefaultIgnoredNames are skipped when Ingestor.IgnoredNames is nil.
var DefaultIgnoredNames = []string{".DS_Store"}

// Gate holds ingestion back before each file read. *memory.Monitor
// implements it.
type Gate interface {
	Wait(ctx context.Context) error
}

// Ingestor builds media trees from a file source.
type Ingestor struct {
	// IgnoredNames are exact entry names to skip, files and directories
	// alike. Ignored entries are never read. nil means DefaultIgnoredNames.
	IgnoredNames []string

	// Workers bounds concurrent file reads. Values below 1 read sequentially.
	Workers int

	// Gate, if set, is consulted before every file read.
	Gate Gate
}

type pendingDir struct {
	name     string
	path     string
	handle   DirHandle
	children []pendingChild
	built    *media.Directory
}

type pendingFile struct {
	name   string
	path   string
	handle FileHandle
	blob   Blob
}

// pendingChild holds exactly one of dir or file.
type pendingChild struct {
	dir  *pendingDir
	file *pendingFile
}

// IngestPath opens p on the local filesystem and ingests it.
func (ing *Ingestor) IngestPath(ctx context.Context, p string) (*media.Directory, error) {
	root, err := OpenPath(p)
	if err != nil {
		metrics.IngestRunsTotal.WithLabelValues("error").Inc()
		return nil, &IngestionError{Path: p, Op: "enumerate", Err: err}
	}
	return ing.Ingest(ctx, root)
}

// Ingest reads the whole hierarchy below root into memory.
//
// Children keep the order the source enumerates them in. A sequential run
// (Workers <= 1) resolves each subdirectory, listing and reads alike, before
// its next sibling. Any failure aborts the run and no tree is returned. With
// Workers > 1 the whole hierarchy is listed first and file contents are then
// read concurrently, so a listing error can be reported ahead of a read error
// that a sequential run would hit first. The resulting tree is the same.
func (ing *Ingestor) Ingest(ctx context.Context, root Handle) (*media.Directory, error) {
	dir, ok := root.(DirHandle)
	if root == nil || !ok || !root.IsDir() {
		metrics.IngestRunsTotal.WithLabelValues("invalid_target").Inc()
		return nil, ErrInvalidDropTarget
	}

	start := time.Now()
	metrics.IngestRunning.Set(1)
	defer metrics.IngestRunning.Set(0)

	logging.Info("Ingesting directory %q (workers=%d)", root.Name(), max(ing.Workers, 1))

	tree, files, dirs, err := ing.run(ctx, dir)
	duration := time.Since(start)
	metrics.IngestDuration.Observe(duration.Seconds())

	if err != nil {
		metrics.IngestRunsTotal.WithLabelValues("error").Inc()
		logging.Warn("Ingestion of %q failed after %v: %v", root.Name(), duration, err)
		return nil, err
	}

	metrics.IngestRunsTotal.WithLabelValues("success").Inc()
	metrics.IngestLastRunTimestamp.Set(float64(time.Now().Unix()))
	logging.Info("Ingested %q: %d files, %d directories in %v", root.Name(), files, dirs, duration)
	return tree, nil
}

func (ing *Ingestor) run(ctx context.Context, root DirHandle) (*media.Directory, int, int, error) {
	ignored := ing.IgnoredNames
	if ignored == nil {
		ignored = DefaultIgnoredNames
	}

	top := &pendingDir{name: root.Name(), path: root.Name(), handle: root}
	var (
		dirs  []*pendingDir
		files int
		err   error
	)
	if ing.Workers > 1 {
		var pending []*pendingFile
		dirs, pending, err = enumerate(ctx, top, ignored)
		if err == nil {
			err = ing.readAll(ctx, top.path, pending)
		}
		files = len(pending)
	} else {
		dirs, files, err = ing.walk(ctx, top, ignored)
	}
	if err != nil {
		return nil, 0, 0, err
	}

	// dirs is in pre-order, so walking it backwards builds every child
	// before its parent.
	for i := len(dirs) - 1; i >= 0; i-- {
		d := dirs[i]
		children := make([]media.Entry, 0, len(d.children))
		for _, c := range d.children {
			if c.dir != nil {
				children = append(children, c.dir.built)
				continue
			}
			f := c.file
			leaf := media.NewFileLeaf(f.name, f.blob.MimeType, f.blob.Size, f.blob.Data)
			metrics.IngestFilesTotal.WithLabelValues(string(leaf.Kind())).Inc()
			metrics.IngestBytesTotal.Add(float64(f.blob.Size))
			children = append(children, leaf)
		}
		d.built = media.NewDirectory(d.name, children)
		d.children = nil
	}

	metrics.IngestDirectoriesTotal.Add(float64(len(dirs)))
	return top.built, files, len(dirs) - 1, nil
}

// list enumerates the entries of d into d.children and returns its
// subdirectories in order. Nothing is read.
func list(ctx context.Context, d *pendingDir, ignored []string) ([]*pendingDir, error) {
	if err := ctx.Err(); err != nil {
		return nil, &IngestionError{Path: d.path, Op: "enumerate", Err: err}
	}

	entries, err := d.handle.Entries(ctx)
	if err != nil {
		return nil, &IngestionError{Path: d.path, Op: "enumerate", Err: err}
	}

	var subdirs []*pendingDir
	for _, e := range entries {
		name := e.Name()
		if name == "" {
			return nil, &IngestionError{Path: d.path + "/", Op: "validate", Err: ErrEmptyName}
		}
		if slices.Contains(ignored, name) {
			logging.Debug("Skipping ignored entry %s", path.Join(d.path, name))
			metrics.IngestSkippedTotal.WithLabelValues("ignored").Inc()
			continue
		}

		p := path.Join(d.path, name)
		if e.IsDir() {
			dh, ok := e.(DirHandle)
			if !ok {
				return nil, &IngestionError{Path: p, Op: "enumerate", Err: fmt.Errorf("directory %q cannot be enumerated", name)}
			}
			sub := &pendingDir{name: name, path: p, handle: dh}
			d.children = append(d.children, pendingChild{dir: sub})
			subdirs = append(subdirs, sub)
			continue
		}

		fh, ok := e.(FileHandle)
		if !ok {
			return nil, &IngestionError{Path: p, Op: "read", Err: fmt.Errorf("file %q cannot be read", name)}
		}
		d.children = append(d.children, pendingChild{file: &pendingFile{name: name, path: p, handle: fh}})
	}
	return subdirs, nil
}

// walk visits the hierarchy below top depth-first, reading each file when
// the walk reaches it. A subdirectory is listed and fully read before the
// next sibling entry is touched. Directories are returned in pre-order.
func (ing *Ingestor) walk(ctx context.Context, top *pendingDir, ignored []string) ([]*pendingDir, int, error) {
	type frame struct {
		dir *pendingDir
		i   int
	}

	if _, err := list(ctx, top, ignored); err != nil {
		return nil, 0, err
	}
	dirs := []*pendingDir{top}
	files := 0
	stack := []frame{{dir: top}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.i >= len(f.dir.children) {
			stack = stack[:len(stack)-1]
			continue
		}
		c := f.dir.children[f.i]
		f.i++

		if c.file != nil {
			if err := ing.read(ctx, c.file); err != nil {
				return nil, 0, err
			}
			files++
			continue
		}
		if _, err := list(ctx, c.dir, ignored); err != nil {
			return nil, 0, err
		}
		dirs = append(dirs, c.dir)
		stack = append(stack, frame{dir: c.dir})
	}
	return dirs, files, nil
}

// enumerate lists every directory below top depth-first with an explicit
// stack. It returns the directories in pre-order and the files in the order
// walk would read them. Nothing is read yet.
func enumerate(ctx context.Context, top *pendingDir, ignored []string) ([]*pendingDir, []*pendingFile, error) {
	var dirs []*pendingDir
	stack := []*pendingDir{top}
	for len(stack) > 0 {
		d := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		dirs = append(dirs, d)

		subdirs, err := list(ctx, d, ignored)
		if err != nil {
			return nil, nil, err
		}
		// Push in reverse so the first subdirectory is enumerated next.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	return dirs, preorderFiles(top), nil
}

// preorderFiles returns the files of the skeleton below top in depth-first
// order.
func preorderFiles(top *pendingDir) []*pendingFile {
	var files []*pendingFile
	type frame struct {
		dir *pendingDir
		i   int
	}
	stack := []frame{{dir: top}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.i >= len(f.dir.children) {
			stack = stack[:len(stack)-1]
			continue
		}
		c := f.dir.children[f.i]
		f.i++
		if c.file != nil {
			files = append(files, c.file)
			continue
		}
		stack = append(stack, frame{dir: c.dir})
	}
	return files
}

// read fills f.blob after the gate lets it through.
func (ing *Ingestor) read(ctx context.Context, f *pendingFile) error {
	if ing.Gate != nil {
		if err := ing.Gate.Wait(ctx); err != nil {
			return &IngestionError{Path: f.path, Op: "wait", Err: err}
		}
	}
	if err := ctx.Err(); err != nil {
		return &IngestionError{Path: f.path, Op: "read", Err: err}
	}
	blob, err := f.handle.Read(ctx)
	if err != nil {
		return &IngestionError{Path: f.path, Op: "read", Err: err}
	}
	f.blob = blob
	return nil
}

// readAll reads files with up to ing.Workers reads in flight. The first
// failure cancels the reads that have not started.
func (ing *Ingestor) readAll(ctx context.Context, rootPath string, files []*pendingFile) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ing.Workers)

	for _, f := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error { return ing.read(gctx, f) })
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// A cancellation that arrived after the last read was scheduled.
	if err := ctx.Err(); err != nil {
		return &IngestionError{Path: rootPath, Op: "read", Err: err}
	}
	return nil
}
