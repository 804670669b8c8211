package ingest

import (
	"errors"
	"fmt"
)

// ErrInvalidDropTarget is returned when the chosen root is not a directory.
// It leaves any existing gallery untouched.
var ErrInvalidDropTarget = errors.New("ingest: drop target is not a directory")

// ErrIngestion matches every *IngestionError via errors.Is.
var ErrIngestion = errors.New("ingest: ingestion failed")

// ErrEmptyName marks an entry without a name.
var ErrEmptyName = errors.New("entry has an empty name")

// IngestionError reports the entry that aborted an ingestion.
type IngestionError struct {
	Path string // entry path, starting with the root's name
	Op   string // "enumerate", "read", "validate" or "wait"
	Err  error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingest: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

// Is reports whether target is ErrIngestion.
func (e *IngestionError) Is(target error) bool { return target == ErrIngestion }
