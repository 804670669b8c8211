package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"media-gallery/internal/autoscroll"
	"media-gallery/internal/ingest"
	"media-gallery/internal/logging"
	"media-gallery/internal/memory"
	"media-gallery/internal/session"
	"media-gallery/internal/settings"
	"media-gallery/internal/workers"

	"github.com/gorilla/mux"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Defaults for values not set in the environment.
const (
	DefaultBind               = "127.0.0.1"
	DefaultPort               = "8080"
	DefaultAutoscrollInterval = autoscroll.DefaultInterval
	maxIngestWorkers          = 8
)

// Config holds all application configuration
type Config struct {
	GalleryDir         string        // directory ingested at start; empty for none
	Bind               string        // listen address of the HTTP API
	Port               string        // HTTP API port
	MetricsEnabled     bool          // serve /metrics
	Columns            int           // initial grid width
	Loop               bool          // carousel wraps at its ends
	IgnoredNames       []string      // entry names skipped during ingestion
	AutoscrollInterval time.Duration // autoscroll tick period
	StopAtBottom       bool          // autoscroll stops at the bottom of the grid
	IngestWorkers      int           // concurrent file reads during ingestion
	LogHTTP            bool          // log every API request
	LogHealthChecks    bool          // log health check requests
	ConfigFile         string        // override file that was applied, if any

	Settings settings.State // initial gallery settings
}

// SessionOptions returns the session options described by c.
func (c *Config) SessionOptions() session.Options {
	st := c.Settings
	return session.Options{
		Settings:           &st,
		Columns:            c.Columns,
		Loop:               c.Loop,
		IgnoredNames:       c.IgnoredNames,
		IngestWorkers:      c.IngestWorkers,
		AutoscrollInterval: c.AutoscrollInterval,
		StopAtBottom:       c.StopAtBottom,
	}
}

// Addr returns the listen address of the HTTP API.
func (c *Config) Addr() string {
	return c.Bind + ":" + c.Port
}

// LoadConfig prints the banner and loads configuration from the environment
// and the optional GALLERY_CONFIG file.
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	config, err := loadConfig(os.Getenv)
	if err != nil {
		return nil, err
	}

	logging.Info("  GALLERY_DIR:               %s", orNone(config.GalleryDir))
	logging.Info("  GALLERY_BIND:              %s", config.Bind)
	logging.Info("  PORT:                      %s", config.Port)
	logging.Info("  METRICS_ENABLED:           %v", config.MetricsEnabled)
	logging.Info("  GALLERY_COLUMNS:           %d", config.Columns)
	logging.Info("  GALLERY_LOOP:              %v", config.Loop)
	logging.Info("  GALLERY_IGNORE:            %s", strings.Join(config.IgnoredNames, ","))
	logging.Info("  AUTOSCROLL_INTERVAL:       %v", config.AutoscrollInterval)
	logging.Info("  AUTOSCROLL_STOP_AT_BOTTOM: %v", config.StopAtBottom)
	logging.Info("  INGEST_WORKERS:            %d", config.IngestWorkers)
	logging.Info("  GALLERY_CONFIG:            %s", orNone(config.ConfigFile))
	logging.Info("  LOG_HTTP:                  %v", config.LogHTTP)
	logging.Info("  LOG_LEVEL:                 %s", logging.GetLevel())
	logging.Info("")
	logging.Info("  Initial settings:")
	logging.Info("    Autoscroll speed: %d", config.Settings.AutoscrollSpeed)
	logging.Info("    Flatten files:    %v", config.Settings.FlattenFiles)
	logging.Info("    Theme:            %s", config.Settings.Theme)

	return config, nil
}

func loadConfig(getenv func(string) string) (*Config, error) {
	env := envReader{getenv: getenv}

	config := &Config{
		GalleryDir:         env.str("GALLERY_DIR", ""),
		Bind:               env.str("GALLERY_BIND", DefaultBind),
		Port:               env.str("PORT", DefaultPort),
		MetricsEnabled:     env.boolean("METRICS_ENABLED", true),
		Columns:            env.integer("GALLERY_COLUMNS", session.DefaultColumns),
		Loop:               env.boolean("GALLERY_LOOP", false),
		IgnoredNames:       env.list("GALLERY_IGNORE", ingest.DefaultIgnoredNames),
		AutoscrollInterval: env.duration("AUTOSCROLL_INTERVAL", DefaultAutoscrollInterval),
		StopAtBottom:       env.boolean("AUTOSCROLL_STOP_AT_BOTTOM", false),
		IngestWorkers:      workers.ForIO(maxIngestWorkers),
		LogHTTP:            env.boolean("LOG_HTTP", true),
		LogHealthChecks:    env.boolean("LOG_HEALTH_CHECKS", false),
		Settings:           settings.Defaults(),
	}

	if path := getenv("GALLERY_CONFIG"); path != "" {
		override, err := LoadConfigOverrideFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		if err := config.Merge(override); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
		config.ConfigFile = path
	}

	if config.GalleryDir != "" {
		abs, err := filepath.Abs(config.GalleryDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve gallery directory path: %w", err)
		}
		config.GalleryDir = abs
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that cannot be repaired.
func (c *Config) Validate() error {
	valid := false
	for _, n := range session.ValidColumns {
		if c.Columns == n {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("columns must be one of %v, got %d", session.ValidColumns, c.Columns)
	}
	if c.AutoscrollInterval <= 0 {
		return fmt.Errorf("autoscroll interval must be positive, got %v", c.AutoscrollInterval)
	}
	if c.IngestWorkers < 1 {
		return fmt.Errorf("ingest workers must be at least 1, got %d", c.IngestWorkers)
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// LogMemoryConfig logs the outcome of memory.ConfigureFromEnv.
func LogMemoryConfig(result memory.ConfigResult) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("MEMORY CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	if !result.Configured {
		logging.Info("  GOMEMLIMIT: not configured (source: %s)", result.Source)
		return
	}
	logging.Info("  GOMEMLIMIT: %d bytes (source: %s)", result.GoMemLimit, result.Source)
	if result.ContainerLimit > 0 {
		logging.Info("  Container limit: %d bytes, ratio %.2f", result.ContainerLimit, result.Ratio)
	}
}

// LogGalleryLoad logs the outcome of ingesting the start-up directory.
func LogGalleryLoad(dir string, duration time.Duration, err error) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("GALLERY INGESTION")
	logging.Info("------------------------------------------------------------")
	if err != nil {
		logging.Warn("  Failed to load %s: %v", dir, err)
		logging.Warn("  Starting with an empty gallery")
		return
	}
	logging.Info("  [OK] Loaded %s in %v", dir, duration)
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   route.GetName(),
			})
		}
		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes at debug level
func LogHTTPRoutes(router *mux.Router, logHTTP, logHealthChecks bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		logging.Debug("  Registered routes (%d total):", len(routes))

		groups := make(map[string][]RouteInfo)
		for _, route := range routes {
			prefix := getRouteGroup(route.Path)
			groups[prefix] = append(groups[prefix], route)
		}

		groupKeys := make([]string, 0, len(groups))
		for k := range groups {
			groupKeys = append(groupKeys, k)
		}
		sort.Strings(groupKeys)

		for _, group := range groupKeys {
			if group != "" {
				logging.Debug("  [%s]", group)
			} else {
				logging.Debug("  [root]")
			}
			for _, route := range groups[group] {
				logging.Debug("    %-6s %s", route.Method, route.Path)
			}
		}
	}

	if logHTTP {
		logging.Info("  HTTP request logging: ON")
	} else {
		logging.Info("  HTTP request logging: OFF (set LOG_HTTP=true to enable)")
	}
	if logHealthChecks {
		logging.Info("  Health check logging: ON")
	} else {
		logging.Info("  Health check logging: OFF (set LOG_HEALTH_CHECKS=true to enable)")
	}
}

// getRouteGroup extracts a group name from a route path
func getRouteGroup(path string) string {
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	first := parts[0]

	if first == "api" && len(parts) > 1 {
		subParts := strings.SplitN(parts[1], "/", 2)
		return "api/" + subParts[0]
	}

	return first
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Addr            string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    API:           http://%s/api/state", config.Addr)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://%s/metrics", config.Addr)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func printBanner() {
	banner := `
------------------------------------------------------------
   __  ___         ___          _____     ____
  /  |/  /__  ____/ (_)__ _    / ___/__ _/ / /__ ______ __
 / /|_/ / -_)/ _  / / _ '/   / (_ / _ '/ / / -_) __/ // /
/_/  /_/\__/ \_,_/_/\_,_/    \___/\_,_/_/_/\__/_/  \_, /
                                                  /___/
------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		logging.Info("  (Container CPU limit detected)")
	}

	if logging.IsDebugEnabled() {
		logging.Debug("  Goroutines:      %d", runtime.NumGoroutine())
		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}
	}

	logging.Info("")
}

// envReader reads typed values with defaults. Invalid values fall back to
// the default with a warning.
type envReader struct {
	getenv func(string) string
}

func (e envReader) str(key, defaultValue string) string {
	if value := e.getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (e envReader) boolean(key string, defaultValue bool) bool {
	value := e.getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func (e envReader) integer(key string, defaultValue int) int {
	value := e.getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("Invalid integer value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func (e envReader) duration(key string, defaultValue time.Duration) time.Duration {
	value := e.getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		logging.Warn("Invalid duration value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

// list splits a comma separated value. An explicitly empty list is written
// as a single comma.
func (e envReader) list(key string, defaultValue []string) []string {
	value := e.getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
