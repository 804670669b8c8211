// Package media defines the in-memory media tree produced by ingestion.
//
// A tree is a *Directory whose children are *FileLeaf and *Directory values
// in source enumeration order. Leaves carry their full content, so a tree is
// self-contained once built: nothing reads from the source afterwards.
//
// Trees are immutable. A session replaces its tree wholesale instead of
// editing it.
package media
