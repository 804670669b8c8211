package carousel

import "sync"

// Player is a playable element shown on a slide, such as a video.
type Player interface {
	Pause()
	Playing() bool
}

// starter is implemented by players that can be started by the carousel.
type starter interface {
	Play()
}

// TrackedPlayer is a Player that only records its state. Front-ends without
// a real media element use it to mirror playback.
type TrackedPlayer struct {
	mu      sync.Mutex
	playing bool
	pauses  int
}

// Play marks the player as playing.
func (p *TrackedPlayer) Play() {
	p.mu.Lock()
	p.playing = true
	p.mu.Unlock()
}

// Pause marks the player as paused.
func (p *TrackedPlayer) Pause() {
	p.mu.Lock()
	if p.playing {
		p.pauses++
	}
	p.playing = false
	p.mu.Unlock()
}

// Playing reports whether the player is playing.
func (p *TrackedPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Pauses returns how many times a playing player was paused.
func (p *TrackedPlayer) Pauses() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pauses
}
