// Package resources manages render handles: opaque IDs that expose a leaf's
// in-memory bytes to a renderer for as long as the view showing the leaf
// needs them.
//
// Each view owns a [Pool]. When the view changes it calls [Pool.Retain] with
// the leaves it now shows; handles for everything else are released.
package resources
