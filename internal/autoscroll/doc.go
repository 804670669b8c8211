// Package autoscroll drives a viewport downwards at a fixed interval.
//
// Each tick scrolls by speed/20, so speed 50 moves 2.5 units per tick. The
// bottom is reached when height+offset >= extent.
package autoscroll
