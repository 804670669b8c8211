// Package metrics provides Prometheus instrumentation for the media gallery.
//
// All metrics are registered with promauto on the default registry and are
// prefixed with "media_gallery_". They are served by the /metrics handler.
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: Counter of total requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Ingestion Metrics
//
//   - IngestRunsTotal: Counter of ingestions by outcome
//   - IngestDuration: Histogram of ingestion duration
//   - IngestFilesTotal / IngestDirectoriesTotal / IngestBytesTotal: work done
//   - IngestSkippedTotal: entries skipped by reason
//   - IngestRunning / IngestLastRunTimestamp
//
// ## Filesystem Metrics
//
// Stale NFS handle retries by operation (stat, readdir, read).
//
// ## Session Metrics
//
//   - SessionCommandsTotal: Counter of session commands by command and status
//   - GalleryFiles, GalleryDirectories, GalleryBytes, GalleryIndexLength:
//     gauges refreshed by the Collector from the session's stats
//
// ## Carousel, Autoscroll and Render Handle Metrics
//
//   - CarouselOpensTotal, CarouselMovesTotal, CarouselPlayersPaused
//   - AutoscrollTicksTotal, AutoscrollRunning, AutoscrollBottomReached
//   - RenderHandlesActive, RenderHandlesAcquired by pool (grid, carousel)
//
// ## Memory Metrics
//
//   - MemoryUsageRatio, MemoryPaused, MemoryGCPauses from the memory monitor
//
// # Usage
//
//	metrics.InitializeMetrics()
//	collector := metrics.NewCollector(sess, time.Minute)
//	collector.Start()
//	defer collector.Stop()
package metrics
