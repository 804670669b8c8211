package resources

import (
	"sync"

	"media-gallery/internal/logging"
	"media-gallery/internal/media"
	"media-gallery/internal/metrics"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"
)

// Handle is an acquired, addressable view of a leaf's bytes.
type Handle struct {
	ID   string
	Leaf *media.FileLeaf
}

// Pool tracks the handles acquired for one view. Handles stay valid until
// the pool releases them; lookups of released IDs fail.
type Pool struct {
	name    string
	mu      sync.Mutex // serializes Retain and ReleaseAll
	byLeaf  map[*media.FileLeaf]string
	handles *xsync.Map[string, *media.FileLeaf]
}

// NewPool creates an empty pool. name labels its metrics.
func NewPool(name string) *Pool {
	return &Pool{
		name:    name,
		byLeaf:  make(map[*media.FileLeaf]string),
		handles: xsync.NewMap[string, *media.FileLeaf](),
	}
}

// Retain makes leaves the exact set of live handles: leaves already held
// keep their IDs, new ones are acquired and every other handle is released.
// The returned handles are in the order of leaves.
func (p *Pool) Retain(leaves []*media.FileLeaf) []Handle {
	p.mu.Lock()
	defer p.mu.Unlock()

	keep := make(map[*media.FileLeaf]struct{}, len(leaves))
	out := make([]Handle, 0, len(leaves))
	for _, leaf := range leaves {
		keep[leaf] = struct{}{}
		out = append(out, Handle{ID: p.acquireLocked(leaf), Leaf: leaf})
	}

	released := 0
	for leaf, id := range p.byLeaf {
		if _, ok := keep[leaf]; !ok {
			p.releaseLocked(leaf, id)
			released++
		}
	}
	if released > 0 {
		logging.Debug("Released %d %s handles", released, p.name)
	}
	return out
}

// Acquire returns a handle for leaf, reusing a live one if present.
func (p *Pool) Acquire(leaf *media.FileLeaf) Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Handle{ID: p.acquireLocked(leaf), Leaf: leaf}
}

func (p *Pool) acquireLocked(leaf *media.FileLeaf) string {
	if id, ok := p.byLeaf[leaf]; ok {
		return id
	}
	id := uuid.New().String()
	p.byLeaf[leaf] = id
	p.handles.Store(id, leaf)
	metrics.RenderHandlesActive.WithLabelValues(p.name).Inc()
	metrics.RenderHandlesAcquired.WithLabelValues(p.name).Inc()
	return id
}

func (p *Pool) releaseLocked(leaf *media.FileLeaf, id string) {
	delete(p.byLeaf, leaf)
	p.handles.Delete(id)
	metrics.RenderHandlesActive.WithLabelValues(p.name).Dec()
}

// ReleaseAll releases every handle of the pool.
func (p *Pool) ReleaseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for leaf, id := range p.byLeaf {
		p.releaseLocked(leaf, id)
	}
}

// Lookup returns the leaf behind a live handle ID.
func (p *Pool) Lookup(id string) (*media.FileLeaf, bool) {
	return p.handles.Load(id)
}

// Len returns the number of live handles.
func (p *Pool) Len() int {
	return p.handles.Size()
}
