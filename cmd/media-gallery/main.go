package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-gallery/internal/handlers"
	"media-gallery/internal/logging"
	"media-gallery/internal/memory"
	"media-gallery/internal/metrics"
	"media-gallery/internal/middleware"
	"media-gallery/internal/session"
	"media-gallery/internal/startup"

	"github.com/gorilla/mux"
)

const (
	statsInterval   = time.Minute
	shutdownTimeout = 30 * time.Second
)

func main() {
	startTime := time.Now()

	// Configure GOMEMLIMIT before anything allocates a gallery
	startup.LogMemoryConfig(memory.ConfigureFromEnv())

	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	monitor := memory.NewMonitor(memory.DefaultConfig())
	monitor.Start()

	opts := config.SessionOptions()
	opts.IngestGate = monitor
	sess := session.New(opts)

	if config.GalleryDir != "" {
		loadStart := time.Now()
		err := sess.LoadPath(context.Background(), config.GalleryDir)
		startup.LogGalleryLoad(config.GalleryDir, time.Since(loadStart), err)
	}

	metrics.InitializeMetrics()
	buildInfo := startup.GetBuildInfo()
	metrics.SetAppInfo(buildInfo.Version, buildInfo.Commit, buildInfo.GoVersion)
	collector := metrics.NewCollector(sess, statsInterval)
	collector.Start()

	h := handlers.New(sess)
	router := setupRouter(h, config.MetricsEnabled)
	startup.LogHTTPRoutes(router, config.LogHTTP, config.LogHealthChecks)

	srv := &http.Server{
		Addr:              config.Addr(),
		Handler:           wrapHandler(router, config),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go handleShutdown(srv, sess, collector, monitor)

	startup.LogServerStarted(startup.ServerConfig{
		Addr:            config.Addr(),
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		startup.LogFatal("Server error: %v", err)
	}
}

// wrapHandler applies the metrics and logging middleware.
func wrapHandler(router http.Handler, config *startup.Config) http.Handler {
	handler := router
	if config.MetricsEnabled {
		handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
	}
	if config.LogHTTP {
		loggingConfig := middleware.DefaultLoggingConfig()
		loggingConfig.LogHealthChecks = config.LogHealthChecks
		handler = middleware.Logger(loggingConfig)(handler)
	}
	return handler
}

func setupRouter(h *handlers.Handlers, metricsEnabled bool) *mux.Router {
	r := mux.NewRouter()

	// Probes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")
	if metricsEnabled {
		r.Handle("/metrics", h.MetricsHandler()).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()

	// Gallery
	api.HandleFunc("/upload", h.Upload).Methods("POST")
	api.HandleFunc("/home", h.NavigateHome).Methods("POST")
	api.HandleFunc("/state", h.GetState).Methods("GET")
	api.HandleFunc("/tree", h.GetTree).Methods("GET")
	api.HandleFunc("/grid", h.GetGrid).Methods("GET")
	api.HandleFunc("/columns", h.SetColumns).Methods("POST")
	api.HandleFunc("/shuffle", h.Shuffle).Methods("POST")
	api.HandleFunc("/unshuffle", h.Unshuffle).Methods("POST")
	api.HandleFunc("/autoscroll", h.SetAutoscroll).Methods("POST")
	api.HandleFunc("/viewport", h.GetViewport).Methods("GET")
	api.HandleFunc("/viewport", h.PutViewport).Methods("PUT")

	// Settings
	api.HandleFunc("/settings", h.PatchSettings).Methods("PATCH")
	api.HandleFunc("/theme", h.SetTheme).Methods("POST")

	// Carousel; the key route must precede the action route
	api.HandleFunc("/carousel", h.OpenCarousel).Methods("POST")
	api.HandleFunc("/carousel", h.GetCarousel).Methods("GET")
	api.HandleFunc("/carousel/key", h.PressKey).Methods("POST")
	api.HandleFunc("/carousel/{action}", h.CarouselAction).Methods("POST")

	// Render handles
	api.HandleFunc("/blob/{handle}", h.GetBlob).Methods("GET", "HEAD")

	return r
}

type stopper interface {
	Stop()
}

func handleShutdown(srv *http.Server, sess *session.Session, collector, monitor stopper) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownStep("Closing gallery session")
	sess.Close()
	startup.LogShutdownStepComplete("Gallery session closed")

	startup.LogShutdownStep("Stopping metrics collector")
	collector.Stop()
	startup.LogShutdownStepComplete("Metrics collector stopped")

	startup.LogShutdownStep("Stopping memory monitor")
	monitor.Stop()
	startup.LogShutdownStepComplete("Memory monitor stopped")

	startup.LogShutdownComplete()
}
