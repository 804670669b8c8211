package metrics

import (
	"sync"
	"time"

	"media-gallery/internal/logging"
)

// StatsProvider interface for collecting stats
type StatsProvider interface {
	GetStats() Stats
}

// Stats holds the current statistics of the loaded gallery
type Stats struct {
	TotalImages      int
	TotalVideos      int
	TotalOther       int
	TotalDirectories int
	TotalBytes       int64
	IndexLength      int
}

// Collector periodically collects and updates metrics
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// NewCollector creates a new metrics collector
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection. It is safe to call more than once.
func (c *Collector) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.statsProvider == nil {
		return
	}

	stats := c.statsProvider.GetStats()

	GalleryFiles.WithLabelValues("image").Set(float64(stats.TotalImages))
	GalleryFiles.WithLabelValues("video").Set(float64(stats.TotalVideos))
	GalleryFiles.WithLabelValues("other").Set(float64(stats.TotalOther))
	GalleryDirectories.Set(float64(stats.TotalDirectories))
	GalleryBytes.Set(float64(stats.TotalBytes))
	GalleryIndexLength.Set(float64(stats.IndexLength))

	logging.Debug("Metrics collected: images=%d, videos=%d, other=%d, directories=%d, index=%d",
		stats.TotalImages, stats.TotalVideos, stats.TotalOther, stats.TotalDirectories, stats.IndexLength)
}
