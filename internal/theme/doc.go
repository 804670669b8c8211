// Package theme defines the gallery color schemes and the provider that
// holds the active one.
package theme
