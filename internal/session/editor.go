package session

import (
	"sync"

	"media-gallery/internal/settings"
	"media-gallery/internal/theme"
)

// SettingsEditor stages settings changes against a session. Changes are
// applied together on Commit. A theme change is previewed immediately and
// stays applied even if the editor is discarded.
type SettingsEditor struct {
	s *Session

	mu     sync.Mutex
	base   settings.State
	staged settings.Patch
	done   bool
}

// EditSettings starts an editor on the current settings.
func (s *Session) EditSettings() *SettingsEditor {
	return &SettingsEditor{s: s, base: s.Settings()}
}

// Draft returns the settings as they would be after Commit.
func (e *SettingsEditor) Draft() settings.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	draft, _ := e.base.Apply(e.staged)
	return draft
}

// Changes returns the fields whose committed value would differ from the
// settings the editor started from. Staging a value back to its original
// leaves it out.
func (e *SettingsEditor) Changes() settings.Patch {
	e.mu.Lock()
	defer e.mu.Unlock()
	draft, _ := e.base.Apply(e.staged)
	return e.base.Diff(draft)
}

func (e *SettingsEditor) stage(p settings.Patch) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done {
		return ErrEditorDone
	}
	if err := p.Validate(); err != nil {
		return err
	}
	e.staged = e.staged.Merge(p)
	return nil
}

// SetSpeed stages an autoscroll speed.
func (e *SettingsEditor) SetSpeed(speed int) error {
	return e.stage(settings.Patch{AutoscrollSpeed: settings.Pointer(settings.ClampSpeed(speed))})
}

// SetFlatten stages the flattenFiles setting.
func (e *SettingsEditor) SetFlatten(flatten bool) error {
	return e.stage(settings.Patch{FlattenFiles: settings.Pointer(flatten)})
}

// SetTheme stages t and applies it to the session right away.
func (e *SettingsEditor) SetTheme(t theme.Theme) error {
	p := settings.Patch{Theme: settings.Pointer(t)}
	if err := e.stage(p); err != nil {
		return err
	}
	return e.s.UpdateSettings(p)
}

// Clear stages the default settings. Nothing is applied until Commit.
func (e *SettingsEditor) Clear() error {
	return e.stage(settings.Defaults().ToPatch())
}

// Commit applies every staged change in one update.
func (e *SettingsEditor) Commit() error {
	e.mu.Lock()
	if e.done {
		e.mu.Unlock()
		return ErrEditorDone
	}
	e.done = true
	staged := e.staged
	e.mu.Unlock()

	if staged.IsEmpty() {
		return nil
	}
	return e.s.UpdateSettings(staged)
}

// Discard drops the staged changes.
func (e *SettingsEditor) Discard() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done {
		return ErrEditorDone
	}
	e.done = true
	e.staged = settings.Patch{}
	return nil
}
