// Package ingest turns a directory from a hierarchical file source into an
// in-memory media tree.
//
// A source is anything that implements [DirHandle] and [FileHandle]. Two are
// provided: [OpenPath] for the local filesystem and [OpenFS] for any io/fs.FS.
//
// Ingestion is all-or-nothing. Every file below the root is read into memory;
// the first enumeration or read failure aborts the run with an
// [*IngestionError] and no tree. A root that is not a directory yields
// [ErrInvalidDropTarget].
//
//	ing := ingest.Ingestor{Workers: workers.ForIO(8)}
//	tree, err := ing.IngestPath(ctx, "/photos/2024")
package ingest
