package session

import (
	"media-gallery/internal/media"
	"media-gallery/internal/mediatypes"
	"media-gallery/internal/navigation"
	"media-gallery/internal/settings"
)

// GridCell is one rendered cell of the gallery grid.
type GridCell struct {
	Slot        int             `json:"slot"`
	Position    int             `json:"position"`
	Placeholder bool            `json:"placeholder"`
	Label       string          `json:"label"`
	Name        string          `json:"name"`
	Path        string          `json:"path,omitempty"`
	Kind        mediatypes.Kind `json:"kind,omitempty"`
	MimeType    string          `json:"mimeType,omitempty"`
	Size        int64           `json:"size,omitempty"`
	Handle      string          `json:"handle,omitempty"`
	Width       int             `json:"width,omitempty"`
	Height      int             `json:"height,omitempty"`
}

// GridPage is a window of the grid.
type GridPage struct {
	Columns int        `json:"columns"`
	Offset  int        `json:"offset"`
	Total   int        `json:"total"`
	Cells   []GridCell `json:"cells"`
}

// State summarizes the session for front-ends.
type State struct {
	Loaded     bool           `json:"loaded"`
	RootName   string         `json:"rootName,omitempty"`
	Columns    int            `json:"columns"`
	Shuffled   bool           `json:"shuffled"`
	Autoscroll bool           `json:"autoscroll"`
	Mode       string         `json:"mode,omitempty"`
	IndexLen   int            `json:"indexLength"`
	Stats      media.Stats    `json:"stats"`
	Settings   settings.State `json:"settings"`
	Carousel   CarouselState  `json:"carousel"`
}

// PlaceholderLabel is the text shown for an unexpanded directory.
func PlaceholderLabel(name string) string {
	return "Directory: " + name
}

// gridCellsLocked returns the displayed cells. Leaves that are neither images
// nor videos keep their index position but are not drawn.
func (s *Session) gridCellsLocked() []navigation.Cell {
	all := s.index.Arrange(s.order)
	cells := all[:0]
	for _, c := range all {
		if c.IsPlaceholder() || s.index.At(c.Position).Navigable() {
			cells = append(cells, c)
		}
	}
	return cells
}

// Grid returns limit cells starting at offset, in display order. A limit of
// 0 or less returns every cell from offset. The offset is clamped to
// [0, Total] and the page reports the clamped value. Render handles are kept for the
// returned leaves and released for every other leaf.
func (s *Session) Grid(offset, limit int) (GridPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return GridPage{}, ErrNoTree
	}

	cells := s.gridCellsLocked()
	offset = min(max(offset, 0), len(cells))
	page := GridPage{Columns: s.columns, Offset: offset, Total: len(cells)}
	end := len(cells)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	window := cells[offset:end]

	leaves := make([]*media.FileLeaf, 0, len(window))
	for _, c := range window {
		if !c.IsPlaceholder() {
			leaves = append(leaves, s.index.At(c.Position).Leaf)
		}
	}
	handles := s.grid.Retain(leaves)

	page.Cells = make([]GridCell, 0, len(window))
	h := 0
	for i, c := range window {
		if c.IsPlaceholder() {
			page.Cells = append(page.Cells, GridCell{
				Slot:        offset + i,
				Position:    -1,
				Placeholder: true,
				Label:       PlaceholderLabel(c.Placeholder.Name),
				Name:        c.Placeholder.Name,
			})
			continue
		}
		it := s.index.At(c.Position)
		cell := GridCell{
			Slot:     offset + i,
			Position: it.Position,
			Label:    it.Leaf.Name(),
			Name:     it.Leaf.Name(),
			Path:     it.Path,
			Kind:     it.Kind(),
			MimeType: it.Leaf.MimeType(),
			Size:     it.Leaf.Size(),
			Handle:   handles[h].ID,
		}
		// Unknown formats keep zero dimensions and a default aspect ratio.
		if dim, err := media.ProbeDimensions(it.Leaf); err == nil {
			cell.Width, cell.Height = dim.Width, dim.Height
		}
		page.Cells = append(page.Cells, cell)
		h++
	}
	return page, nil
}

// Items returns the index items in display order.
func (s *Session) Items() ([]navigation.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return nil, ErrNoTree
	}
	return s.displayItemsLocked(), nil
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Loaded:     s.tree != nil,
		Columns:    s.columns,
		Shuffled:   s.order != nil,
		Autoscroll: s.autoscroll,
		Stats:      s.stats,
		Settings:   s.settings,
		Carousel:   s.carouselStateLocked(),
	}
	if s.tree != nil {
		st.RootName = s.tree.Name()
		st.Mode = s.index.Mode().String()
		st.IndexLen = s.index.Len()
	}
	return st
}
