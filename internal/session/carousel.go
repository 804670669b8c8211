package session

import (
	"slices"

	"media-gallery/internal/carousel"
	"media-gallery/internal/logging"
	"media-gallery/internal/media"
	"media-gallery/internal/mediatypes"
	"media-gallery/internal/navigation"
)

// CarouselState describes the open carousel.
type CarouselState struct {
	Open     bool            `json:"open"`
	Slot     int             `json:"slot"`     // position in display order
	Position int             `json:"position"` // position in the index
	Total    int             `json:"total"`
	Path     string          `json:"path,omitempty"`
	Name     string          `json:"name,omitempty"`
	Kind     mediatypes.Kind `json:"kind,omitempty"`
	MimeType string          `json:"mimeType,omitempty"`
	Handle   string          `json:"handle,omitempty"`
	Playing  bool            `json:"playing"`
	Loop     bool            `json:"loop"`
}

// displayItemsLocked returns the index items in display order.
func (s *Session) displayItemsLocked() []navigation.Item {
	if s.order == nil {
		return s.index.Items()
	}
	items := make([]navigation.Item, len(s.order))
	for slot, pos := range s.order {
		items[slot] = s.index.At(pos)
	}
	return items
}

// OpenCarousel opens the carousel on the item at index position pos. The
// carousel walks the items in the order the grid displays them.
func (s *Session) OpenCarousel(pos int) (err error) {
	defer func() { record("open_carousel", err) }()

	s.mu.Lock()
	if s.index == nil {
		s.mu.Unlock()
		return ErrNoTree
	}
	if pos < 0 || pos >= s.index.Len() {
		s.mu.Unlock()
		return ErrPositionOutOfRange
	}
	if !s.index.At(pos).Navigable() {
		s.mu.Unlock()
		return ErrNotNavigable
	}

	items := s.displayItemsLocked()
	slot := pos
	if s.order != nil {
		slot = slices.Index(s.order, pos)
	}

	// The callbacks read c only after taking s.mu, which is held until c is
	// published.
	var c *carousel.Carousel
	c, err = carousel.Open(items, slot, carousel.Options{
		Loop:     s.loop,
		Keyboard: s.keys,
		OnMove: func(slot int) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.carousel == c {
				s.prepareSlideLocked(c, slot)
			}
		},
		OnClose: func() {
			s.mu.Lock()
			current := s.carousel == c
			if current {
				s.detachCarouselLocked()
			}
			s.mu.Unlock()
			s.carouselClosed(current)
		},
	})
	if err != nil {
		s.mu.Unlock()
		return err
	}
	prev := s.detachCarouselLocked()
	s.carousel = c
	s.slideItems = items
	s.players = make(map[int]*carousel.TrackedPlayer)
	s.prepareSlideLocked(c, slot)
	s.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
	logging.Debug("Carousel opened on %q", items[slot].Path)
	s.observer.OnShowCarousel(pos)
	return nil
}

// detachCarouselLocked forgets the open carousel and returns it so the
// caller can close it after releasing s.mu.
func (s *Session) detachCarouselLocked() *carousel.Carousel {
	c := s.carousel
	s.carousel = nil
	s.slideItems = nil
	s.players = nil
	s.slides.ReleaseAll()
	return c
}

// prepareSlideLocked holds render handles for the slide at slot and its
// neighbours and gives a video slide a player.
func (s *Session) prepareSlideLocked(c *carousel.Carousel, slot int) {
	n := len(s.slideItems)
	leaves := make([]*media.FileLeaf, 0, 3)
	for _, i := range []int{slot - 1, slot, slot + 1} {
		if s.loop {
			i = (i + n) % n
		}
		if i < 0 || i >= n || !s.slideItems[i].Navigable() {
			continue
		}
		if !slices.Contains(leaves, s.slideItems[i].Leaf) {
			leaves = append(leaves, s.slideItems[i].Leaf)
		}
	}
	s.slides.Retain(leaves)

	if s.slideItems[slot].Kind() != mediatypes.KindVideo {
		return
	}
	if _, ok := s.players[slot]; ok {
		return
	}
	p := &carousel.TrackedPlayer{}
	if err := c.Attach(slot, p); err != nil {
		logging.Debug("Attach player to slide %d: %v", slot, err)
		return
	}
	s.players[slot] = p
}

func (s *Session) carouselClosed(current bool) {
	record("close_carousel", nil)
	if current {
		s.observer.OnCloseCarousel()
	}
}

func (s *Session) openCarousel() (*carousel.Carousel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.carousel == nil {
		return nil, ErrCarouselClosed
	}
	return s.carousel, nil
}

// CloseCarousel closes the open carousel.
func (s *Session) CloseCarousel() error {
	c, err := s.openCarousel()
	if err != nil {
		return err
	}
	c.Close()
	return nil
}

// CarouselNext advances the carousel and returns the new state.
func (s *Session) CarouselNext() (CarouselState, error) {
	c, err := s.openCarousel()
	if err != nil {
		return CarouselState{}, err
	}
	if _, err := c.Next(); err != nil {
		return CarouselState{}, ErrCarouselClosed
	}
	return s.CarouselState(), nil
}

// CarouselPrev moves the carousel back and returns the new state.
func (s *Session) CarouselPrev() (CarouselState, error) {
	c, err := s.openCarousel()
	if err != nil {
		return CarouselState{}, err
	}
	if _, err := c.Prev(); err != nil {
		return CarouselState{}, ErrCarouselClosed
	}
	return s.CarouselState(), nil
}

// CarouselPlay starts the current slide's player. It reports false when the
// current slide has nothing to play.
func (s *Session) CarouselPlay() (bool, error) {
	c, err := s.openCarousel()
	if err != nil {
		return false, err
	}
	ok, err := c.Play()
	if err != nil {
		return false, ErrCarouselClosed
	}
	return ok, nil
}

// CarouselPause pauses the current slide's player.
func (s *Session) CarouselPause() error {
	c, err := s.openCarousel()
	if err != nil {
		return err
	}
	if err := c.Pause(); err != nil {
		return ErrCarouselClosed
	}
	return nil
}

// PressKey delivers a key press to the open carousel. It reports whether any
// listener received it.
func (s *Session) PressKey(key string) bool {
	return s.keys.Dispatch(key) > 0
}

// CarouselState returns the state of the carousel; Open is false when none
// is shown.
func (s *Session) CarouselState() CarouselState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carouselStateLocked()
}

func (s *Session) carouselStateLocked() CarouselState {
	c := s.carousel
	if c == nil {
		return CarouselState{Loop: s.loop}
	}
	slot := c.Position()
	it := s.slideItems[slot]
	st := CarouselState{
		Open:     true,
		Slot:     slot,
		Position: it.Position,
		Total:    len(s.slideItems),
		Path:     it.Path,
		Name:     it.Leaf.Name(),
		Kind:     it.Kind(),
		MimeType: it.Leaf.MimeType(),
		Handle:   s.slides.Acquire(it.Leaf).ID,
		Loop:     s.loop,
	}
	if p, ok := s.players[slot]; ok {
		st.Playing = p.Playing()
	}
	return st
}
