package autoscroll

import (
	"testing"
)

func TestPosition_AtBottom(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{"top of long content", Position{Height: 100, Extent: 1000, Offset: 0}, false},
		{"exactly at bottom", Position{Height: 100, Extent: 1000, Offset: 900}, true},
		{"past the bottom", Position{Height: 100, Extent: 1000, Offset: 950}, true},
		{"content shorter than view", Position{Height: 100, Extent: 50, Offset: 0}, true},
		{"unknown extent", Position{Height: 100, Extent: 0, Offset: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.AtBottom(); got != tt.want {
				t.Errorf("AtBottom() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTracker(t *testing.T) {
	tr := NewTracker(100, 300)

	tr.ScrollBy(50)
	if got := tr.Position().Offset; got != 50 {
		t.Errorf("Offset = %v, want 50", got)
	}

	tr.ScrollBy(1000)
	if got := tr.Position().Offset; got != 200 {
		t.Errorf("Offset = %v, want clamped 200", got)
	}
	if !tr.Position().AtBottom() {
		t.Error("tracker scrolled to the end should be at the bottom")
	}

	tr.ScrollBy(-500)
	if got := tr.Position().Offset; got != 0 {
		t.Errorf("Offset = %v, want clamped 0", got)
	}

	tr.Set(Position{Height: 50, Extent: 500, Offset: 120})
	tr.ScrollToTop()
	if got := tr.Position(); got != (Position{Height: 50, Extent: 500}) {
		t.Errorf("Position() = %+v after ScrollToTop", got)
	}
}

func TestTracker_DrivenByTimer(t *testing.T) {
	tr := NewTracker(10, 30)
	done := make(chan struct{})
	timer := New(Config{Interval: 1, SpeedPercent: 100, StopAtBottom: true}, tr, func() { close(done) })

	timer.Start()
	<-done

	if got := tr.Position().Offset; got != 20 {
		t.Errorf("Offset = %v, want 20", got)
	}
}
