package navigation

import (
	"media-gallery/internal/media"
	"media-gallery/internal/mediatypes"
)

// Mode selects which leaves of a tree are addressable.
type Mode int

const (
	// ModeShallow addresses only the files directly under the root. Top-level
	// directories appear in the layout as placeholders.
	ModeShallow Mode = iota
	// ModeFull addresses every leaf of the tree in depth-first pre-order.
	ModeFull
)

func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeShallow:
		return "shallow"
	default:
		return "unknown"
	}
}

// ModeFor maps the flattenFiles setting to a mode.
func ModeFor(flattenFiles bool) Mode {
	if flattenFiles {
		return ModeFull
	}
	return ModeShallow
}

// Item is one addressable leaf.
type Item struct {
	Position int
	Path     string // relative to the tree root, "/"-separated
	Leaf     *media.FileLeaf
}

// Kind returns the classification of the leaf.
func (it Item) Kind() mediatypes.Kind { return it.Leaf.Kind() }

// Navigable reports whether the carousel can show the item.
func (it Item) Navigable() bool { return mediatypes.IsNavigable(it.Leaf.Kind()) }

// Placeholder stands in for a directory that is not expanded.
type Placeholder struct {
	Name string
}

// Cell is one slot of the grid layout: an index position or a placeholder.
type Cell struct {
	Position    int         // valid for item cells
	Placeholder Placeholder // valid for placeholder cells
	isDir       bool
}

// IsPlaceholder reports whether the cell is a directory placeholder.
func (c Cell) IsPlaceholder() bool { return c.isDir }

// Index is the linear addressing of a tree's leaves. It is immutable; a
// different mode or a new tree means a new Index.
type Index struct {
	mode         Mode
	items        []Item
	layout       []Cell
	placeholders []Placeholder
}

// Build derives the index of root under mode. A nil root yields an empty index.
func Build(root *media.Directory, mode Mode) *Index {
	x := &Index{mode: mode}
	if root == nil {
		return x
	}

	switch mode {
	case ModeFull:
		_ = media.Walk(root, func(path string, _ int, e media.Entry) error {
			if leaf, ok := e.(*media.FileLeaf); ok {
				x.addItem(path, leaf)
			}
			return nil
		})
	default:
		for _, child := range root.Children() {
			switch e := child.(type) {
			case *media.FileLeaf:
				x.addItem(e.Name(), e)
			case *media.Directory:
				ph := Placeholder{Name: e.Name()}
				x.placeholders = append(x.placeholders, ph)
				x.layout = append(x.layout, Cell{Placeholder: ph, isDir: true})
			}
		}
	}
	return x
}

func (x *Index) addItem(path string, leaf *media.FileLeaf) {
	pos := len(x.items)
	x.items = append(x.items, Item{Position: pos, Path: path, Leaf: leaf})
	x.layout = append(x.layout, Cell{Position: pos})
}

// Mode returns the mode the index was built with.
func (x *Index) Mode() Mode { return x.mode }

// Len returns the number of addressable leaves.
func (x *Index) Len() int { return len(x.items) }

// At returns the item at position i.
func (x *Index) At(i int) Item { return x.items[i] }

// Items returns a copy of all items in position order.
func (x *Index) Items() []Item {
	items := make([]Item, len(x.items))
	copy(items, x.items)
	return items
}

// Layout returns the grid cells in source order, placeholders interleaved
// with items where their directories appeared.
func (x *Index) Layout() []Cell {
	cells := make([]Cell, len(x.layout))
	copy(cells, x.layout)
	return cells
}

// Arrange returns the grid cells for a display order. A nil order is the
// source layout. Otherwise placeholders come first, followed by the items in
// the given order.
func (x *Index) Arrange(order Order) []Cell {
	if order == nil {
		return x.Layout()
	}
	cells := make([]Cell, 0, len(x.placeholders)+len(order))
	for _, ph := range x.placeholders {
		cells = append(cells, Cell{Placeholder: ph, isDir: true})
	}
	for _, pos := range order {
		cells = append(cells, Cell{Position: pos})
	}
	return cells
}
