// Package main provides gallery-tui, a terminal front-end for Media Gallery.
//
// It takes the same environment configuration as the server (see package
// startup) and runs one gallery session in the terminal. Log output goes to
// the file named by GALLERY_LOG_FILE, or nowhere when it is unset.
//
// Keys are listed at the bottom of each screen.
package main
