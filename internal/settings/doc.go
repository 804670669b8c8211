// Package settings holds the gallery settings and their partial-update
// semantics.
//
// A [Patch] is a shallow merge: nil fields leave the current value alone.
//
//	s, err := settings.Defaults().Apply(settings.Patch{
//		AutoscrollSpeed: settings.Pointer(80),
//	})
package settings
