// Package carousel implements the full-screen slide viewer over a
// navigation index.
//
// Moves skip items that are neither images nor videos. At the ends a
// carousel clamps, or wraps when opened with Loop. Whenever the slide
// changes, every attached player except the new slide's is paused, so at
// most one plays at a time.
//
//	bus := carousel.NewKeyBus()
//	c, err := carousel.Open(index.Items(), 3, carousel.Options{Keyboard: bus})
//	bus.Dispatch(carousel.KeyRight) // c.Next()
//	bus.Dispatch(carousel.KeyEscape) // c.Close()
package carousel
