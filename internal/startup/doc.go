// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// Configuration is loaded from environment variables via [LoadConfig]:
//
//   - GALLERY_DIR: Directory ingested at start (default: none)
//   - GALLERY_BIND: Listen address of the HTTP API (default: 127.0.0.1)
//   - PORT: HTTP API port (default: 8080)
//   - METRICS_ENABLED: Serve /metrics (default: true)
//   - GALLERY_COLUMNS: Initial grid width, 2, 3 or 4 (default: 3)
//   - GALLERY_LOOP: Carousel wraps at its ends (default: false)
//   - GALLERY_IGNORE: Comma separated entry names skipped by ingestion (default: .DS_Store)
//   - AUTOSCROLL_INTERVAL: Autoscroll tick period as Go duration (default: 10ms)
//   - AUTOSCROLL_STOP_AT_BOTTOM: Stop autoscroll at the bottom (default: false)
//   - INGEST_WORKERS: Concurrent file reads during ingestion (default: 2 per CPU, at most 8)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_HTTP: Log API requests (default: true)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: false)
//   - MEMORY_LIMIT, MEMORY_RATIO, GOMEMLIMIT: see package memory
//
// GALLERY_CONFIG names an optional YAML or JSON file whose values override
// the environment. Only the fields present in the file are applied, and its
// settings section sets the initial gallery settings:
//
//	port: "9000"
//	columns: 4
//	ignore: [".DS_Store", "Thumbs.db"]
//	settings:
//	  autoscroll_speed: 30
//	  flatten_files: true
//	  theme: dark
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
//
// # Lifecycle Logging
//
// [LogMemoryConfig], [LogGalleryLoad], [LogHTTPRoutes], [LogServerStarted]
// and the shutdown helpers print the start-up and shutdown sections in a
// consistent format.
package startup
