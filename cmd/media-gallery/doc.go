// Package main provides the HTTP server of Media Gallery.
//
// Media Gallery ingests a local directory into memory and serves it as a
// browsable gallery: a grid of images and videos, directory placeholders or
// a flattened view, shuffling, autoscroll and a full-size carousel. One
// gallery session is shared by every client of the server.
//
// # Application Lifecycle
//
//  1. Memory configuration: GOMEMLIMIT from MEMORY_LIMIT or the cgroup limit
//  2. Configuration loading from the environment and GALLERY_CONFIG
//  3. Memory monitor start; it pauses ingestion while the heap is critical
//  4. Session creation and, when GALLERY_DIR is set, the initial ingestion
//  5. Metrics collector start and HTTP server setup
//  6. Graceful shutdown on SIGINT or SIGTERM
//
// # HTTP Server
//
// The server binds to 127.0.0.1:8080 by default. Gallery commands live
// under /api, probes at /health, /healthz, /livez and /readyz, and
// Prometheus metrics at /metrics when METRICS_ENABLED is true. Render handle
// bytes at /api/blob/{handle} are served to loopback clients only.
//
// See package startup for the full list of environment variables.
//
// # Graceful Shutdown
//
//  1. Stop accepting new HTTP requests (30s timeout)
//  2. Close the session, which stops autoscroll and closes the carousel
//  3. Stop the metrics collector
//  4. Stop the memory monitor
//
// # Related Packages
//
//   - [media-gallery/internal/session]: gallery state and commands
//   - [media-gallery/internal/ingest]: directory ingestion
//   - [media-gallery/internal/handlers]: HTTP request handlers
//   - [media-gallery/internal/middleware]: HTTP middleware (logging, metrics)
//   - [media-gallery/internal/startup]: configuration and initialization
package main
