package session

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"media-gallery/internal/autoscroll"
	"media-gallery/internal/carousel"
	"media-gallery/internal/ingest"
	"media-gallery/internal/logging"
	"media-gallery/internal/media"
	"media-gallery/internal/metrics"
	"media-gallery/internal/navigation"
	"media-gallery/internal/resources"
	"media-gallery/internal/settings"
	"media-gallery/internal/theme"
)

// DefaultColumns is the grid width of a new session.
const DefaultColumns = 3

// ValidColumns lists the accepted grid widths.
var ValidColumns = []int{2, 3, 4}

// Options configures a Session. The zero value is usable.
type Options struct {
	// Settings are the initial settings; nil means settings.Defaults().
	Settings *settings.State
	// Columns is the initial grid width; 0 means DefaultColumns.
	Columns int
	// Loop makes the carousel wrap at its ends instead of clamping.
	Loop bool

	// IgnoredNames, IngestWorkers and IngestGate configure Load.
	IgnoredNames  []string
	IngestWorkers int
	IngestGate    ingest.Gate

	// Rand drives Shuffle; nil uses the global source.
	Rand *rand.Rand
	// Theme receives theme changes; nil discards them.
	Theme theme.Setter
	// Viewport is scrolled by autoscroll; nil uses an autoscroll.Tracker.
	Viewport autoscroll.Viewport
	// Observer receives lifecycle events; nil uses NopObserver.
	Observer Observer

	AutoscrollInterval time.Duration
	StopAtBottom       bool
}

// Session is the state of one gallery: the loaded tree, its navigation
// index and every view setting. All methods are safe for concurrent use.
type Session struct {
	loop         bool
	ignoredNames []string
	workers      int
	gate         ingest.Gate
	rng          *rand.Rand
	shuffle      func(n int, rng *rand.Rand) navigation.Order
	themeSetter  theme.Setter
	viewport     autoscroll.Viewport
	observer     Observer
	stopAtBottom bool
	keys         *carousel.KeyBus
	timer        *autoscroll.Timer
	grid         *resources.Pool
	slides       *resources.Pool

	mu         sync.Mutex
	closed     bool
	settings   settings.State
	columns    int
	tree       *media.Directory
	stats      media.Stats
	index      *navigation.Index
	order      navigation.Order // nil when unshuffled
	autoscroll bool
	carousel   *carousel.Carousel
	slideItems []navigation.Item
	players    map[int]*carousel.TrackedPlayer
}

// New creates a session with no gallery loaded.
func New(opts Options) *Session {
	st := settings.Defaults()
	if opts.Settings != nil {
		st = *opts.Settings
		st.AutoscrollSpeed = settings.ClampSpeed(st.AutoscrollSpeed)
		if !st.Theme.Valid() {
			st.Theme = theme.Default
		}
	}

	columns := opts.Columns
	if !slices.Contains(ValidColumns, columns) {
		columns = DefaultColumns
	}

	s := &Session{
		loop:         opts.Loop,
		ignoredNames: opts.IgnoredNames,
		workers:      opts.IngestWorkers,
		gate:         opts.IngestGate,
		rng:          opts.Rand,
		shuffle:      navigation.Shuffle,
		themeSetter:  opts.Theme,
		viewport:     opts.Viewport,
		observer:     opts.Observer,
		stopAtBottom: opts.StopAtBottom,
		keys:         carousel.NewKeyBus(),
		grid:         resources.NewPool("grid"),
		slides:       resources.NewPool("carousel"),
		settings:     st,
		columns:      columns,
	}
	if s.viewport == nil {
		s.viewport = autoscroll.NewTracker(0, 0)
	}
	if s.observer == nil {
		s.observer = NopObserver{}
	}
	s.timer = autoscroll.New(autoscroll.Config{
		Interval:     opts.AutoscrollInterval,
		SpeedPercent: st.AutoscrollSpeed,
		StopAtBottom: opts.StopAtBottom,
	}, s.viewport, s.reachedBottom)

	if s.themeSetter != nil {
		s.themeSetter.SetTheme(st.Theme)
	}
	return s
}

func record(command string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.SessionCommandsTotal.WithLabelValues(command, status).Inc()
}

func (s *Session) ingestor() *ingest.Ingestor {
	return &ingest.Ingestor{IgnoredNames: s.ignoredNames, Workers: s.workers, Gate: s.gate}
}

// Load ingests root and, on success, uploads the resulting tree. On any
// failure the session is left untouched.
func (s *Session) Load(ctx context.Context, root ingest.Handle) error {
	tree, err := s.ingestor().Ingest(ctx, root)
	if err != nil {
		record("upload", err)
		return err
	}
	return s.Upload(tree)
}

// LoadPath is Load for a directory on the local filesystem.
func (s *Session) LoadPath(ctx context.Context, path string) error {
	tree, err := s.ingestor().IngestPath(ctx, path)
	if err != nil {
		record("upload", err)
		return err
	}
	return s.Upload(tree)
}

// Upload replaces the gallery with tree. The order is reset, any open
// carousel is closed and every render handle is released.
func (s *Session) Upload(tree *media.Directory) (err error) {
	defer func() { record("upload", err) }()
	if tree == nil {
		return ErrNoTree
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	c := s.detachCarouselLocked()
	s.grid.ReleaseAll()
	s.tree = tree
	s.stats = media.Count(tree)
	s.index = navigation.Build(tree, navigation.ModeFor(s.settings.FlattenFiles))
	s.order = nil
	s.viewport.ScrollToTop()
	stats, name, n := s.stats, tree.Name(), s.index.Len()
	s.mu.Unlock()

	if c != nil {
		c.Close()
	}
	logging.Info("Gallery %q loaded: %d images, %d videos, %d other, %d directories (%d indexed)",
		name, stats.Images, stats.Videos, stats.Other, stats.Directories, n)
	s.observer.OnUpload(name, stats)
	return nil
}

// NavigateHome unloads the gallery: autoscroll stops, the carousel closes and
// every render handle is released. Settings and columns are kept.
func (s *Session) NavigateHome() {
	s.mu.Lock()
	c := s.unloadLocked()
	s.mu.Unlock()

	if c != nil {
		c.Close()
	}
	record("navigate_home", nil)
	logging.Info("Gallery unloaded")
	s.observer.OnNavigateHome()
}

// Close tears the session down. Later commands return ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	c := s.unloadLocked()
	s.mu.Unlock()

	if c != nil {
		c.Close()
	}
}

func (s *Session) unloadLocked() *carousel.Carousel {
	s.autoscroll = false
	s.timer.Stop()
	c := s.detachCarouselLocked()
	s.grid.ReleaseAll()
	s.tree = nil
	s.stats = media.Stats{}
	s.index = nil
	s.order = nil
	return c
}

// SetColumns changes the grid width.
func (s *Session) SetColumns(n int) (err error) {
	defer func() { record("set_columns", err) }()
	if !slices.Contains(ValidColumns, n) {
		return ErrInvalidColumns
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.columns = n
	return nil
}

// Shuffle displays the index in a new random order and scrolls to the top.
func (s *Session) Shuffle() (err error) {
	defer func() { record("shuffle", err) }()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return ErrNoTree
	}
	n := s.index.Len()
	order := s.shuffle(n, s.rng)
	if !order.IsPermutation(n) {
		return errInvalidOrder
	}
	s.order = order
	s.viewport.ScrollToTop()
	logging.Debug("Shuffled %d items", len(s.order))
	return nil
}

// ResetOrder returns to the source order.
func (s *Session) ResetOrder() (err error) {
	defer func() { record("reset_order", err) }()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return ErrNoTree
	}
	s.order = nil
	return nil
}

// SetAutoscroll starts or stops scrolling the viewport.
func (s *Session) SetAutoscroll(enabled bool) (err error) {
	defer func() { record("set_autoscroll", err) }()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return ErrNoTree
	}
	s.autoscroll = enabled
	if enabled {
		s.timer.Start()
	} else {
		s.timer.Stop()
	}
	return nil
}

func (s *Session) reachedBottom() {
	logging.Debug("Autoscroll reached the bottom of the gallery")
	if !s.stopAtBottom {
		return
	}
	s.mu.Lock()
	if !s.timer.Running() {
		s.autoscroll = false
	}
	s.mu.Unlock()
}

// UpdateSettings merges patch into the settings. A theme change goes to the
// theme setter immediately. Changing FlattenFiles rebuilds the index and
// resets the order; changing the speed takes effect on the running timer.
func (s *Session) UpdateSettings(patch settings.Patch) (err error) {
	defer func() { record("update_settings", err) }()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	old := s.settings
	next, err := old.Apply(patch)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.settings = next

	var c *carousel.Carousel
	if next.FlattenFiles != old.FlattenFiles && s.tree != nil {
		c = s.detachCarouselLocked()
		s.grid.ReleaseAll()
		s.index = navigation.Build(s.tree, navigation.ModeFor(next.FlattenFiles))
		s.order = nil
		logging.Debug("Index rebuilt in %s mode: %d items", s.index.Mode(), s.index.Len())
	}
	if next.AutoscrollSpeed != old.AutoscrollSpeed {
		s.timer.SetSpeed(next.AutoscrollSpeed)
		if s.autoscroll {
			s.timer.Stop()
			s.timer.Start()
		}
	}
	s.mu.Unlock()

	if c != nil {
		c.Close()
	}
	if next.Theme != old.Theme && s.themeSetter != nil {
		s.themeSetter.SetTheme(next.Theme)
	}
	return nil
}

// Settings returns the current settings.
func (s *Session) Settings() settings.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Tree returns the loaded tree, or nil.
func (s *Session) Tree() *media.Directory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// Viewport returns the viewport driven by autoscroll.
func (s *Session) Viewport() autoscroll.Viewport {
	return s.viewport
}

// Lookup returns the leaf behind a live render handle of the grid or the
// carousel.
func (s *Session) Lookup(handleID string) (*media.FileLeaf, bool) {
	if leaf, ok := s.grid.Lookup(handleID); ok {
		return leaf, true
	}
	return s.slides.Lookup(handleID)
}

// Stats returns the statistics of the loaded tree.
func (s *Session) Stats() media.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// GetStats implements metrics.StatsProvider.
func (s *Session) GetStats() metrics.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	if s.index != nil {
		n = s.index.Len()
	}
	return metrics.Stats{
		TotalImages:      s.stats.Images,
		TotalVideos:      s.stats.Videos,
		TotalOther:       s.stats.Other,
		TotalDirectories: s.stats.Directories,
		TotalBytes:       s.stats.Bytes,
		IndexLength:      n,
	}
}
