package autoscroll

import (
	"sync"
	"sync/atomic"
	"time"

	"media-gallery/internal/logging"
	"media-gallery/internal/metrics"
	"media-gallery/internal/settings"
)

// DefaultInterval is the tick period when Config.Interval is zero.
const DefaultInterval = 10 * time.Millisecond

// Config configures a Timer.
type Config struct {
	Interval     time.Duration
	SpeedPercent int  // 0..100; each tick scrolls SpeedPercent/20
	StopAtBottom bool // stop the loop once the bottom is reached
}

// Timer scrolls a viewport at a fixed interval. At most one loop runs per
// Timer.
type Timer struct {
	interval     time.Duration
	stopAtBottom bool
	viewport     Viewport
	onBottom     func()

	speed atomic.Int64
	ticks atomic.Int64

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// New creates a stopped timer. onBottom, if non-nil, is called once per run
// when the viewport reaches the bottom. With StopAtBottom it is called after
// the loop has exited, so it may call Stop or Start; otherwise it runs on its
// own goroutine.
func New(cfg Config, vp Viewport, onBottom func()) *Timer {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	t := &Timer{
		interval:     interval,
		stopAtBottom: cfg.StopAtBottom,
		viewport:     vp,
		onBottom:     onBottom,
	}
	t.speed.Store(int64(settings.ClampSpeed(cfg.SpeedPercent)))
	return t
}

// Start launches the loop. It is a no-op while running.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return
	}
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	metrics.AutoscrollRunning.Set(1)
	logging.Debug("Autoscroll started (interval=%v, speed=%d)", t.interval, t.speed.Load())
	go t.loop(t.stop, t.done)
}

// Stop ends the loop and waits for it to exit. No tick happens after Stop
// returns. It is a no-op when stopped.
func (t *Timer) Stop() {
	t.mu.Lock()
	if t.stop == nil {
		t.mu.Unlock()
		return
	}
	close(t.stop)
	done := t.done
	t.stop, t.done = nil, nil
	t.mu.Unlock()

	<-done
	metrics.AutoscrollRunning.Set(0)
	logging.Debug("Autoscroll stopped after %d ticks", t.ticks.Load())
}

// Running reports whether the loop is active.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

// Ticks returns the number of ticks since the timer was created.
func (t *Timer) Ticks() int64 {
	return t.ticks.Load()
}

// Speed returns the current speed percentage.
func (t *Timer) Speed() int {
	return int(t.speed.Load())
}

// SetSpeed changes the speed, effective from the next tick.
func (t *Timer) SetSpeed(percent int) {
	t.speed.Store(int64(settings.ClampSpeed(percent)))
}

func (t *Timer) loop(stop, done chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	reported := false
	for {
		select {
		case <-stop:
			close(done)
			return
		case <-ticker.C:
		}

		// A stop that raced with the tick wins.
		select {
		case <-stop:
			close(done)
			return
		default:
		}

		t.viewport.ScrollBy(settings.ScrollStep(int(t.speed.Load())))
		t.ticks.Add(1)
		metrics.AutoscrollTicksTotal.Inc()

		if reported || !t.viewport.Position().AtBottom() {
			continue
		}
		reported = true
		metrics.AutoscrollBottomReached.Inc()

		if !t.stopAtBottom {
			if t.onBottom != nil {
				go t.onBottom()
			}
			continue
		}

		t.mu.Lock()
		if t.done == done {
			t.stop, t.done = nil, nil
			metrics.AutoscrollRunning.Set(0)
		}
		t.mu.Unlock()
		close(done)
		logging.Debug("Autoscroll reached the bottom after %d ticks", t.ticks.Load())
		if t.onBottom != nil {
			t.onBottom()
		}
		return
	}
}
