// Package tui is a terminal front-end for a gallery session, built on
// bubbletea.
//
// The home screen asks for a directory and ingests it. The gallery screen
// draws the grid a window of rows at a time and reports that window to the
// autoscroll viewport, one grid row being 100 viewport units. The carousel
// screen sends arrow and Escape keys through the session's key bus, the same
// path a browser front-end uses.
package tui
