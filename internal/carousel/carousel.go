package carousel

import (
	"errors"
	"sync"

	"media-gallery/internal/logging"
	"media-gallery/internal/metrics"
	"media-gallery/internal/navigation"
)

var (
	// ErrPositionOutOfRange is returned for a position outside the items.
	ErrPositionOutOfRange = errors.New("carousel: position out of range")
	// ErrNotNavigable is returned when opening on an item that cannot be shown.
	ErrNotNavigable = errors.New("carousel: item is not an image or video")
	// ErrClosed is returned by operations on a closed carousel.
	ErrClosed = errors.New("carousel: closed")
)

// Options configures a Carousel.
type Options struct {
	// Loop wraps Next at the end and Prev at the start; otherwise they clamp.
	Loop bool
	// Keyboard, if set, drives the carousel with arrow keys and Escape.
	Keyboard Keyboard
	// OnClose is called once, after the carousel has closed.
	OnClose func()
	// OnMove is called with the new position after every move.
	OnMove func(position int)
}

// Carousel shows one navigable item at a time.
type Carousel struct {
	mu          sync.Mutex
	items       []navigation.Item
	current     int
	loop        bool
	players     map[int]Player
	closed      bool
	unsubscribe func()
	onClose     func()
	onMove      func(int)
	closeOnce   sync.Once
}

// Open shows items[start]. Positions are indices into items.
func Open(items []navigation.Item, start int, opts Options) (*Carousel, error) {
	if start < 0 || start >= len(items) {
		return nil, ErrPositionOutOfRange
	}
	if !items[start].Navigable() {
		return nil, ErrNotNavigable
	}

	c := &Carousel{
		items:   items,
		current: start,
		loop:    opts.Loop,
		players: make(map[int]Player),
		onClose: opts.OnClose,
		onMove:  opts.OnMove,
	}
	if opts.Keyboard != nil {
		c.unsubscribe = opts.Keyboard.Subscribe(c.handleKey)
	}

	metrics.CarouselOpensTotal.Inc()
	logging.Debug("Carousel opened at %d of %d (loop=%v)", start, len(items), opts.Loop)
	return c, nil
}

func (c *Carousel) handleKey(key string) {
	switch key {
	case KeyLeft:
		_, _ = c.Prev()
	case KeyRight:
		_, _ = c.Next()
	case KeyEscape:
		c.Close()
	}
}

// Next moves to the next navigable item and returns the new position.
func (c *Carousel) Next() (int, error) {
	return c.move(1, "next")
}

// Prev moves to the previous navigable item and returns the new position.
func (c *Carousel) Prev() (int, error) {
	return c.move(-1, "prev")
}

func (c *Carousel) move(step int, direction string) (int, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, ErrClosed
	}

	target, ok := c.seek(step)
	if !ok || target == c.current {
		pos := c.current
		c.mu.Unlock()
		return pos, nil
	}

	c.current = target
	c.pauseOthersLocked(target)
	onMove := c.onMove
	c.mu.Unlock()

	metrics.CarouselMovesTotal.WithLabelValues(direction).Inc()
	if onMove != nil {
		onMove(target)
	}
	return target, nil
}

// seek finds the nearest navigable item in direction step, wrapping when
// looping. It reports false when there is none.
func (c *Carousel) seek(step int) (int, bool) {
	n := len(c.items)
	pos := c.current
	for i := 1; i < n; i++ {
		pos += step
		if pos < 0 || pos >= n {
			if !c.loop {
				return 0, false
			}
			pos = (pos + n) % n
		}
		if c.items[pos].Navigable() {
			return pos, true
		}
	}
	return 0, false
}

func (c *Carousel) pauseOthersLocked(keep int) {
	for pos, p := range c.players {
		if pos != keep && p.Playing() {
			p.Pause()
			metrics.CarouselPlayersPaused.Inc()
		}
	}
}

// Attach registers the player for the slide at pos. A player attached to a
// slide other than the current one is paused.
func (c *Carousel) Attach(pos int, p Player) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if pos < 0 || pos >= len(c.items) {
		return ErrPositionOutOfRange
	}
	c.players[pos] = p
	if pos != c.current && p.Playing() {
		p.Pause()
	}
	return nil
}

// Play starts the current slide's player, pausing every other one. It
// reports whether a startable player is attached to the current slide.
func (c *Carousel) Play() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false, ErrClosed
	}
	c.pauseOthersLocked(c.current)
	s, ok := c.players[c.current].(starter)
	if !ok {
		return false, nil
	}
	s.Play()
	return true, nil
}

// Pause pauses the current slide's player, if any.
func (c *Carousel) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if p, ok := c.players[c.current]; ok {
		p.Pause()
	}
	return nil
}

// Close pauses every player, removes the key subscription and calls
// OnClose. Only the first call has any effect.
func (c *Carousel) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		for _, p := range c.players {
			p.Pause()
		}
		c.players = nil
		unsubscribe := c.unsubscribe
		onClose := c.onClose
		c.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
		}
		logging.Debug("Carousel closed")
		if onClose != nil {
			onClose()
		}
	})
}

// Closed reports whether Close has been called.
func (c *Carousel) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Position returns the current position.
func (c *Carousel) Position() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Current returns the item being shown.
func (c *Carousel) Current() navigation.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[c.current]
}

// Len returns the number of items, navigable or not.
func (c *Carousel) Len() int {
	return len(c.items)
}
