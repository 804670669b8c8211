package theme

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"media-gallery/internal/logging"
)

// Theme is the color scheme of the gallery.
type Theme string

const (
	Light  Theme = "light"
	Dark   Theme = "dark"
	System Theme = "system"
)

// Default is the theme used until one is chosen.
const Default = System

// ErrInvalidTheme is returned for names other than light, dark and system.
var ErrInvalidTheme = errors.New("theme: invalid theme")

// All lists the themes in cycling order.
var All = []Theme{Light, Dark, System}

// Parse returns the theme named s, ignoring case and surrounding spaces.
func Parse(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
	return t, nil
}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	switch t {
	case Light, Dark, System:
		return true
	}
	return false
}

// Next returns the theme after t in All.
func (t Theme) Next() Theme {
	for i, c := range All {
		if c == t {
			return All[(i+1)%len(All)]
		}
	}
	return Default
}

// Setter applies a theme. Session code only ever changes the theme through
// a Setter it was given.
type Setter interface {
	SetTheme(Theme)
}

// Provider holds the active theme for the process.
type Provider struct {
	mu      sync.RWMutex
	current Theme
}

// NewProvider returns a provider initialized to t, or Default if t is invalid.
func NewProvider(t Theme) *Provider {
	p := &Provider{}
	p.Init(t)
	return p
}

// Init resets the provider to t, or Default if t is invalid.
func (p *Provider) Init(t Theme) {
	if !t.Valid() {
		t = Default
	}
	p.mu.Lock()
	p.current = t
	p.mu.Unlock()
}

// SetTheme switches the active theme. Invalid themes are ignored.
func (p *Provider) SetTheme(t Theme) {
	if !t.Valid() {
		logging.Warn("Ignoring invalid theme %q", t)
		return
	}
	p.mu.Lock()
	changed := p.current != t
	p.current = t
	p.mu.Unlock()
	if changed {
		logging.Debug("Theme set to %s", t)
	}
}

// Current returns the active theme.
func (p *Provider) Current() Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == "" {
		return Default
	}
	return p.current
}
