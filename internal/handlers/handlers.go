package handlers

import (
	"sync"
	"sync/atomic"
	"time"

	"media-gallery/internal/session"
)

// Handlers serves the HTTP API of one gallery session.
type Handlers struct {
	session   *session.Session
	startTime time.Time

	ingesting atomic.Int32 // uploads in flight
	mu        sync.Mutex
	lastError string // last failed ingestion, cleared by a successful one
	lastLoad  time.Time
}

// New creates the handlers for s.
func New(s *session.Session) *Handlers {
	return &Handlers{session: s, startTime: time.Now()}
}

func (h *Handlers) isIngesting() bool { return h.ingesting.Load() > 0 }

func (h *Handlers) recordIngest(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.lastError = err.Error()
		return
	}
	h.lastError = ""
	h.lastLoad = time.Now()
}

func (h *Handlers) ingestStatus() (lastError string, lastLoad time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastError, h.lastLoad
}
