package carousel

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"
)

// Key names delivered by a Keyboard.
const (
	KeyLeft   = "ArrowLeft"
	KeyRight  = "ArrowRight"
	KeyEscape = "Escape"
)

// Keyboard delivers key presses to subscribers. The returned function
// removes the subscription and is safe to call more than once.
type Keyboard interface {
	Subscribe(fn func(key string)) (unsubscribe func())
}

// KeyBus is an in-process Keyboard. Front-ends feed it with Dispatch.
type KeyBus struct {
	listeners *xsync.Map[uint64, func(string)]
	nextID    atomic.Uint64
}

// NewKeyBus creates a bus with no listeners.
func NewKeyBus() *KeyBus {
	return &KeyBus{listeners: xsync.NewMap[uint64, func(string)]()}
}

// Subscribe registers fn for every dispatched key.
func (b *KeyBus) Subscribe(fn func(key string)) func() {
	id := b.nextID.Add(1)
	b.listeners.Store(id, fn)
	return func() { b.listeners.Delete(id) }
}

// Dispatch delivers key to every listener and returns how many received it.
// Listeners may unsubscribe while being called.
func (b *KeyBus) Dispatch(key string) int {
	n := 0
	b.listeners.Range(func(_ uint64, fn func(string)) bool {
		fn(key)
		n++
		return true
	})
	return n
}

// Len returns the number of listeners.
func (b *KeyBus) Len() int {
	return b.listeners.Size()
}
