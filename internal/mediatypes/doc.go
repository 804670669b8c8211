// Package mediatypes provides shared type definitions and utilities for media
// classification across the media-gallery application.
//
// This package exists as a dependency-free foundation that can be imported by
// other packages without creating import cycles.
//
// # Classification
//
// Classify maps a MIME type to a Kind by prefix:
//
//	mediatypes.Classify("image/png")       // KindImage
//	mediatypes.Classify("video/mp4")       // KindVideo
//	mediatypes.Classify("application/pdf") // KindOther
//
// KindOther is a normal outcome, not an error. Callers treat it as "not
// navigable media" and leave such files out of the grid and the carousel.
//
// # MIME Types
//
// Sources that only know a file name (the local filesystem) use
// MimeTypeForName to derive the MIME type:
//
//	mimeType := mediatypes.MimeTypeForName("beach.JPG") // "image/jpeg"
package mediatypes
