// Package navigation flattens a media tree into a linear index used by the
// grid and the carousel.
//
// [Build] walks the tree once. [ModeFull] addresses every leaf in depth-first
// pre-order; [ModeShallow] addresses only the top-level files and records
// top-level directories as placeholders. The index is never reordered:
// shuffling produces an [Order] of positions instead.
package navigation
