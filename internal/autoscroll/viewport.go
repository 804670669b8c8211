package autoscroll

import (
	"sync"
)

// Position describes a scrollable view.
type Position struct {
	Height float64 `json:"height"` // visible height
	Extent float64 `json:"extent"` // total content height
	Offset float64 `json:"offset"` // distance scrolled from the top
}

// AtBottom reports whether the visible area reaches the end of the content.
// An unknown extent (zero or less) never counts as the bottom.
func (p Position) AtBottom() bool {
	return p.Extent > 0 && p.Height+p.Offset >= p.Extent
}

// Viewport is the scrollable surface driven by the timer.
type Viewport interface {
	ScrollBy(dy float64)
	ScrollToTop()
	Position() Position
}

// Tracker is an in-memory Viewport for front-ends that report their
// dimensions and read back the offset. It is safe for concurrent use.
type Tracker struct {
	mu  sync.Mutex
	pos Position
}

// NewTracker returns a tracker scrolled to the top.
func NewTracker(height, extent float64) *Tracker {
	return &Tracker{pos: Position{Height: height, Extent: extent}}
}

// ScrollBy moves the offset by dy, kept within the content when the extent
// is known.
func (t *Tracker) ScrollBy(dy float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pos.Offset = t.clamp(t.pos.Offset + dy)
}

// ScrollToTop resets the offset.
func (t *Tracker) ScrollToTop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pos.Offset = 0
}

// Position returns the current position.
func (t *Tracker) Position() Position {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pos
}

// Set replaces the position, clamping the offset.
func (t *Tracker) Set(p Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pos.Height = max(p.Height, 0)
	t.pos.Extent = max(p.Extent, 0)
	t.pos.Offset = t.clamp(p.Offset)
}

func (t *Tracker) clamp(offset float64) float64 {
	if offset < 0 {
		return 0
	}
	if t.pos.Extent > 0 {
		return min(offset, max(t.pos.Extent-t.pos.Height, 0))
	}
	return offset
}
