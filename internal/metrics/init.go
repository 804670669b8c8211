package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, status := range []string{"success", "error", "invalid_target"} {
		IngestRunsTotal.WithLabelValues(status)
	}

	for _, kind := range []string{"image", "video", "other"} {
		IngestFilesTotal.WithLabelValues(kind)
		GalleryFiles.WithLabelValues(kind)
	}

	for _, reason := range []string{"ignored", "symlink_dir", "irregular"} {
		IngestSkippedTotal.WithLabelValues(reason)
	}

	for _, op := range []string{"stat", "readdir", "read"} {
		FilesystemRetryAttempts.WithLabelValues(op)
		FilesystemRetrySuccess.WithLabelValues(op)
		FilesystemRetryFailures.WithLabelValues(op)
		FilesystemStaleErrors.WithLabelValues(op)
		FilesystemRetryDuration.WithLabelValues(op)
	}

	for _, cmd := range []string{"upload", "navigate_home", "set_columns", "shuffle", "reset_order",
		"set_autoscroll", "update_settings", "open_carousel", "close_carousel"} {
		SessionCommandsTotal.WithLabelValues(cmd, "success")
		SessionCommandsTotal.WithLabelValues(cmd, "error")
	}

	for _, dir := range []string{"next", "prev"} {
		CarouselMovesTotal.WithLabelValues(dir)
	}

	for _, pool := range []string{"grid", "carousel"} {
		RenderHandlesActive.WithLabelValues(pool)
		RenderHandlesAcquired.WithLabelValues(pool)
	}
}
