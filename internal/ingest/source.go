package ingest

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"path/filepath"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"
	"media-gallery/internal/mediatypes"
	"media-gallery/internal/metrics"
)

// Handle is one entry of a hierarchical file source.
type Handle interface {
	Name() string
	IsDir() bool
}

// DirHandle is a directory whose entries can be enumerated.
type DirHandle interface {
	Handle
	Entries(ctx context.Context) ([]Handle, error)
}

// FileHandle is a file whose content can be read.
type FileHandle interface {
	Handle
	Read(ctx context.Context) (Blob, error)
}

// Blob is the full content of a file with the metadata the source reports.
type Blob struct {
	Size     int64
	MimeType string
	Data     []byte
}

// OpenPath returns a handle for a path on the local filesystem. Reads go
// through the filesystem retry helpers so stale NFS handles are retried.
func OpenPath(p string) (Handle, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, err
	}
	info, err := filesystem.StatWithRetry(abs, filesystem.DefaultRetryConfig())
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return osDir{path: abs}, nil
	}
	return osFile{path: abs}, nil
}

type osDir struct {
	path string
}

func (d osDir) Name() string { return filepath.Base(d.path) }
func (d osDir) IsDir() bool  { return true }

// Entries lists the directory in name order. Symlinks are followed for files;
// symlinked directories are skipped so a link cycle cannot trap ingestion.
// Devices, sockets and pipes are skipped.
func (d osDir) Entries(ctx context.Context) ([]Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config := filesystem.DefaultRetryConfig()
	dirEntries, err := filesystem.ReadDirWithRetry(d.path, config)
	if err != nil {
		return nil, err
	}

	handles := make([]Handle, 0, len(dirEntries))
	for _, de := range dirEntries {
		full := filepath.Join(d.path, de.Name())
		mode := de.Type()

		if mode&fs.ModeSymlink != 0 {
			info, err := filesystem.StatWithRetry(full, config)
			if err != nil {
				return nil, err
			}
			if info.IsDir() {
				logging.Debug("Skipping symlinked directory %s", full)
				metrics.IngestSkippedTotal.WithLabelValues("symlink_dir").Inc()
				continue
			}
			mode = info.Mode().Type()
		}

		switch {
		case mode.IsDir():
			handles = append(handles, osDir{path: full})
		case mode.IsRegular():
			handles = append(handles, osFile{path: full})
		default:
			logging.Debug("Skipping non-regular file %s (%s)", full, mode)
			metrics.IngestSkippedTotal.WithLabelValues("irregular").Inc()
		}
	}
	return handles, nil
}

type osFile struct {
	path string
}

func (f osFile) Name() string { return filepath.Base(f.path) }
func (f osFile) IsDir() bool  { return false }

func (f osFile) Read(ctx context.Context) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, err
	}
	data, err := filesystem.ReadFileWithRetry(f.path, filesystem.DefaultRetryConfig())
	if err != nil {
		return Blob{}, err
	}
	return Blob{
		Size:     int64(len(data)),
		MimeType: mediatypes.MimeTypeForName(f.path),
		Data:     data,
	}, nil
}

// OpenFS returns a handle for dir inside fsys.
func OpenFS(fsys fs.FS, dir string) (Handle, error) {
	info, err := fs.Stat(fsys, dir)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return fsDir{fsys: fsys, path: dir}, nil
	}
	if !info.Mode().IsRegular() {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: errors.New("not a regular file")}
	}
	return fsFile{fsys: fsys, path: dir}, nil
}

type fsDir struct {
	fsys fs.FS
	path string
}

func (d fsDir) Name() string { return path.Base(d.path) }
func (d fsDir) IsDir() bool  { return true }

func (d fsDir) Entries(ctx context.Context) ([]Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dirEntries, err := fs.ReadDir(d.fsys, d.path)
	if err != nil {
		return nil, err
	}

	handles := make([]Handle, 0, len(dirEntries))
	for _, de := range dirEntries {
		full := path.Join(d.path, de.Name())
		switch {
		case de.IsDir():
			handles = append(handles, fsDir{fsys: d.fsys, path: full})
		case de.Type().IsRegular():
			handles = append(handles, fsFile{fsys: d.fsys, path: full})
		default:
			metrics.IngestSkippedTotal.WithLabelValues("irregular").Inc()
		}
	}
	return handles, nil
}

type fsFile struct {
	fsys fs.FS
	path string
}

func (f fsFile) Name() string { return path.Base(f.path) }
func (f fsFile) IsDir() bool  { return false }

func (f fsFile) Read(ctx context.Context) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, err
	}
	data, err := fs.ReadFile(f.fsys, f.path)
	if err != nil {
		return Blob{}, err
	}
	return Blob{
		Size:     int64(len(data)),
		MimeType: mediatypes.MimeTypeForName(f.path),
		Data:     data,
	}, nil
}

var (
	_ DirHandle  = osDir{}
	_ FileHandle = osFile{}
	_ DirHandle  = fsDir{}
	_ FileHandle = fsFile{}
)
