package session

import "errors"

var (
	// ErrNoTree is returned by commands that need a loaded gallery.
	ErrNoTree = errors.New("session: no gallery loaded")
	// ErrInvalidColumns is returned for a column count other than 2, 3 or 4.
	ErrInvalidColumns = errors.New("session: columns must be 2, 3 or 4")
	// ErrPositionOutOfRange is returned for a position outside the index.
	ErrPositionOutOfRange = errors.New("session: position out of range")
	// ErrNotNavigable is returned when opening the carousel on a leaf that
	// is neither an image nor a video.
	ErrNotNavigable = errors.New("session: item is not an image or video")
	// ErrCarouselClosed is returned by carousel commands when none is open.
	ErrCarouselClosed = errors.New("session: carousel is not open")
	// ErrEditorDone is returned by a settings editor after Commit or Discard.
	ErrEditorDone = errors.New("session: settings editor already finished")
	// ErrClosed is returned by commands on a closed session.
	ErrClosed = errors.New("session: closed")

	errInvalidOrder = errors.New("session: shuffle did not produce a permutation")
)
