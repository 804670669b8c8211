package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_gallery_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Ingestion metrics
var (
	IngestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_ingest_runs_total",
			Help: "Total number of directory ingestions by outcome",
		},
		[]string{"status"}, // "success", "error", "invalid_target"
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_gallery_ingest_duration_seconds",
			Help:    "Directory ingestion duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	IngestFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_ingest_files_total",
			Help: "Total number of files read during ingestion by kind",
		},
		[]string{"kind"},
	)

	IngestDirectoriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gallery_ingest_directories_total",
			Help: "Total number of directories enumerated during ingestion",
		},
	)

	IngestBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gallery_ingest_bytes_total",
			Help: "Total number of bytes read into memory during ingestion",
		},
	)

	IngestSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_ingest_skipped_total",
			Help: "Total number of entries skipped during ingestion by reason",
		},
		[]string{"reason"}, // "ignored", "symlink_dir", "irregular"
	)

	IngestRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_ingest_running",
			Help: "Whether an ingestion is currently running (1 = running, 0 = idle)",
		},
	)

	IngestLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_ingest_last_run_timestamp",
			Help: "Unix timestamp of the last completed ingestion",
		},
	)
)

// Filesystem retry metrics
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_retry_attempts_total",
			Help: "Total number of filesystem operation retries on stale handles",
		},
		[]string{"operation"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_retry_success_total",
			Help: "Total number of filesystem operations that succeeded after retrying",
		},
		[]string{"operation"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_retry_failures_total",
			Help: "Total number of filesystem operations that failed after all retries",
		},
		[]string{"operation"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_stale_errors_total",
			Help: "Total number of stale file handle errors observed",
		},
		[]string{"operation"},
	)

	FilesystemRetryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_gallery_filesystem_operation_duration_seconds",
			Help:    "Duration of filesystem operations including retries",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)
)

// Session metrics
var (
	SessionCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_session_commands_total",
			Help: "Total number of session commands by command and status",
		},
		[]string{"command", "status"},
	)

	GalleryFiles = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_gallery_tree_files",
			Help: "Number of files in the loaded tree by kind",
		},
		[]string{"kind"},
	)

	GalleryDirectories = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_tree_directories",
			Help: "Number of directories in the loaded tree",
		},
	)

	GalleryBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_tree_bytes",
			Help: "Total bytes held in memory by the loaded tree",
		},
	)

	GalleryIndexLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_index_length",
			Help: "Number of entries in the active navigation index",
		},
	)
)

// Carousel metrics
var (
	CarouselOpensTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gallery_carousel_opens_total",
			Help: "Total number of times the carousel was opened",
		},
	)

	CarouselMovesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_carousel_moves_total",
			Help: "Total number of carousel moves by direction",
		},
		[]string{"direction"}, // "next", "prev"
	)

	CarouselPlayersPaused = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gallery_carousel_players_paused_total",
			Help: "Total number of players paused because another slide became current",
		},
	)
)

// Autoscroll metrics
var (
	AutoscrollTicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gallery_autoscroll_ticks_total",
			Help: "Total number of autoscroll ticks",
		},
	)

	AutoscrollRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_autoscroll_running",
			Help: "Whether the autoscroll timer is running (1 = running, 0 = stopped)",
		},
	)

	AutoscrollBottomReached = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gallery_autoscroll_bottom_reached_total",
			Help: "Total number of times autoscroll reached the bottom of the content",
		},
	)
)

// Render handle metrics
var (
	RenderHandlesActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_gallery_render_handles_active",
			Help: "Number of render handles currently acquired by pool",
		},
		[]string{"pool"},
	)

	RenderHandlesAcquired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_render_handles_acquired_total",
			Help: "Total number of render handles acquired by pool",
		},
		[]string{"pool"},
	)
)

// Memory metrics
var (
	MemoryUsageRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_memory_usage_ratio",
			Help: "Heap allocation as a fraction of the configured memory limit",
		},
	)

	MemoryPaused = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_memory_paused",
			Help: "Whether ingestion is paused for memory pressure (1 = paused, 0 = running)",
		},
	)

	MemoryGCPauses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gallery_memory_gc_pauses_total",
			Help: "Total number of times ingestion was paused for memory pressure",
		},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_gallery_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
