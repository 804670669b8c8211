package settings

import (
	"media-gallery/internal/theme"
)

const (
	// MinAutoscrollSpeed is the slowest speed; at 0 autoscroll does not move.
	MinAutoscrollSpeed = 0
	// MaxAutoscrollSpeed is the fastest speed.
	MaxAutoscrollSpeed = 100
	// DefaultAutoscrollSpeed is the speed of a fresh session.
	DefaultAutoscrollSpeed = 50
	// DefaultFlattenFiles keeps a fresh session to top-level entries.
	DefaultFlattenFiles = false
)

// State is the user-adjustable gallery settings.
type State struct {
	AutoscrollSpeed int         `json:"autoscrollSpeed" yaml:"autoscroll_speed"`
	FlattenFiles    bool        `json:"flattenFiles" yaml:"flatten_files"`
	Theme           theme.Theme `json:"theme" yaml:"theme"`
}

// Defaults returns the settings of a fresh session.
func Defaults() State {
	return State{
		AutoscrollSpeed: DefaultAutoscrollSpeed,
		FlattenFiles:    DefaultFlattenFiles,
		Theme:           theme.Default,
	}
}

// Patch uses pointer fields to distinguish between unset and zero values
// when applying a partial update. See [State] for field descriptions.
type Patch struct {
	AutoscrollSpeed *int         `json:"autoscrollSpeed,omitempty" yaml:"autoscroll_speed,omitempty"`
	FlattenFiles    *bool        `json:"flattenFiles,omitempty" yaml:"flatten_files,omitempty"`
	Theme           *theme.Theme `json:"theme,omitempty" yaml:"theme,omitempty"`
}

// Pointer returns a pointer to v, for building patches.
func Pointer[T any](v T) *T {
	return &v
}

// IsEmpty reports whether the patch sets nothing.
func (p Patch) IsEmpty() bool {
	return p.AutoscrollSpeed == nil && p.FlattenFiles == nil && p.Theme == nil
}

// Merge returns p with every field set in later overriding it.
func (p Patch) Merge(later Patch) Patch {
	if later.AutoscrollSpeed != nil {
		p.AutoscrollSpeed = later.AutoscrollSpeed
	}
	if later.FlattenFiles != nil {
		p.FlattenFiles = later.FlattenFiles
	}
	if later.Theme != nil {
		p.Theme = later.Theme
	}
	return p
}

// Validate checks the fields that cannot be repaired by clamping.
func (p Patch) Validate() error {
	if p.Theme != nil && !p.Theme.Valid() {
		_, err := theme.Parse(string(*p.Theme))
		return err
	}
	return nil
}

// Apply returns s with non-nil fields of p applied. Fields left nil keep
// their current value. The speed is clamped to 0..100. An unknown theme
// rejects the whole patch and s is returned unchanged.
func (s State) Apply(p Patch) (State, error) {
	if err := p.Validate(); err != nil {
		return s, err
	}
	if p.AutoscrollSpeed != nil {
		s.AutoscrollSpeed = ClampSpeed(*p.AutoscrollSpeed)
	}
	if p.FlattenFiles != nil {
		s.FlattenFiles = *p.FlattenFiles
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	return s, nil
}

// Diff returns the patch that turns s into other, setting only the fields
// that differ.
func (s State) Diff(other State) Patch {
	var p Patch
	if s.AutoscrollSpeed != other.AutoscrollSpeed {
		p.AutoscrollSpeed = Pointer(other.AutoscrollSpeed)
	}
	if s.FlattenFiles != other.FlattenFiles {
		p.FlattenFiles = Pointer(other.FlattenFiles)
	}
	if s.Theme != other.Theme {
		p.Theme = Pointer(other.Theme)
	}
	return p
}

// ToPatch returns a patch that sets every field to its value in s.
func (s State) ToPatch() Patch {
	return Patch{
		AutoscrollSpeed: Pointer(s.AutoscrollSpeed),
		FlattenFiles:    Pointer(s.FlattenFiles),
		Theme:           Pointer(s.Theme),
	}
}

// ClampSpeed limits v to the valid autoscroll speed range.
func ClampSpeed(v int) int {
	return min(max(v, MinAutoscrollSpeed), MaxAutoscrollSpeed)
}

// ScrollStep returns the distance scrolled per autoscroll tick at speed.
func ScrollStep(speed int) float64 {
	return float64(ClampSpeed(speed)) / 20
}
