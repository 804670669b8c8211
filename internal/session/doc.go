// Package session holds the state of one gallery and the commands that
// change it.
//
// A Session owns the loaded media tree, the navigation index derived from
// it, the display order, the settings, the autoscroll timer and at most one
// open carousel. Front-ends (the HTTP API and the terminal UI) drive it
// through its methods and render from State, Grid and CarouselState.
//
// Observers and the theme setter are always called without the session lock
// held, and carousel callbacks take the session lock only after the carousel
// has released its own.
package session
