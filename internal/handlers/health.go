package handlers

import (
	"net/http"
	"runtime"
	"time"

	"media-gallery/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusStarting = "starting"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status          string `json:"status"`
	Ready           bool   `json:"ready"`
	Version         string `json:"version"`
	Uptime          string `json:"uptime"`
	Ingesting       bool   `json:"ingesting"`
	LastLoaded      string `json:"lastLoaded,omitempty"`
	LastIngestError string `json:"lastIngestError,omitempty"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`

	// Gallery summary
	Loaded       bool `json:"loaded"`
	TotalFiles   int  `json:"totalFiles,omitempty"`
	TotalFolders int  `json:"totalFolders,omitempty"`
}

// HealthCheck returns the health status of the service. It reports 503
// while a gallery is being ingested.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	ingesting := h.isIngesting()
	lastError, lastLoad := h.ingestStatus()
	stats := h.session.Stats()

	response := HealthResponse{
		Ready:           !ingesting,
		Version:         startup.Version,
		Uptime:          time.Since(h.startTime).Round(time.Second).String(),
		Ingesting:       ingesting,
		LastIngestError: lastError,
		GoVersion:       runtime.Version(),
		NumCPU:          runtime.NumCPU(),
		NumGoroutine:    runtime.NumGoroutine(),
		Loaded:          h.session.Tree() != nil,
		TotalFiles:      stats.Files,
		TotalFolders:    stats.Directories,
	}

	switch {
	case ingesting:
		response.Status = statusStarting
	case lastError != "":
		response.Status = statusDegraded
	default:
		response.Status = statusHealthy
	}
	if !lastLoad.IsZero() {
		response.LastLoaded = lastLoad.Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	if ingesting {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	// For HEAD requests, only send headers (no body)
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSONStatus(w, "alive")
}

// ReadinessCheck returns 200 only when no ingestion is running
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	if h.isIngesting() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, map[string]string{"status": "not_ready"})
		return
	}
	writeJSONStatus(w, "ready")
}
