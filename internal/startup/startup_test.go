package startup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"media-gallery/internal/settings"
	"media-gallery/internal/theme"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getenvFrom(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.OS)
	assert.NotEmpty(t, info.Arch)
	assert.Equal(t, GoVersion, info.GoVersion)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("INGEST_WORKERS", "")

	cfg, err := loadConfig(getenvFrom(nil))
	require.NoError(t, err)

	assert.Empty(t, cfg.GalleryDir)
	assert.Equal(t, DefaultBind, cfg.Bind)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 3, cfg.Columns)
	assert.False(t, cfg.Loop)
	assert.Equal(t, []string{".DS_Store"}, cfg.IgnoredNames)
	assert.Equal(t, DefaultAutoscrollInterval, cfg.AutoscrollInterval)
	assert.False(t, cfg.StopAtBottom)
	assert.GreaterOrEqual(t, cfg.IngestWorkers, 1)
	assert.LessOrEqual(t, cfg.IngestWorkers, maxIngestWorkers)
	assert.Equal(t, settings.Defaults(), cfg.Settings)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("INGEST_WORKERS", "2")
	dir := t.TempDir()

	cfg, err := loadConfig(getenvFrom(map[string]string{
		"GALLERY_DIR":               dir,
		"GALLERY_BIND":              "0.0.0.0",
		"PORT":                      "9000",
		"METRICS_ENABLED":           "false",
		"GALLERY_COLUMNS":           "4",
		"GALLERY_LOOP":              "true",
		"GALLERY_IGNORE":            "Thumbs.db,.DS_Store",
		"AUTOSCROLL_INTERVAL":       "20ms",
		"AUTOSCROLL_STOP_AT_BOTTOM": "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.GalleryDir)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, 4, cfg.Columns)
	assert.True(t, cfg.Loop)
	assert.Equal(t, []string{"Thumbs.db", ".DS_Store"}, cfg.IgnoredNames)
	assert.Equal(t, 20*time.Millisecond, cfg.AutoscrollInterval)
	assert.True(t, cfg.StopAtBottom)
	assert.Equal(t, 2, cfg.IngestWorkers)
}

func TestLoadConfig_InvalidColumns(t *testing.T) {
	_, err := loadConfig(getenvFrom(map[string]string{"GALLERY_COLUMNS": "7"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns")
}

func TestLoadConfig_OverrideFile(t *testing.T) {
	path := writeFile(t, "gallery.yaml", `
port: "9100"
columns: 2
loop: true
ignore: []
autoscroll_interval: 50ms
settings:
  autoscroll_speed: 0
  flatten_files: true
  theme: dark
`)

	cfg, err := loadConfig(getenvFrom(map[string]string{
		"PORT":           "9000",
		"GALLERY_CONFIG": path,
	}))
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, "9100", cfg.Port, "file must override the environment")
	assert.Equal(t, 2, cfg.Columns)
	assert.True(t, cfg.Loop)
	assert.NotNil(t, cfg.IgnoredNames)
	assert.Empty(t, cfg.IgnoredNames, "an explicit empty list keeps every entry")
	assert.Equal(t, 50*time.Millisecond, cfg.AutoscrollInterval)
	assert.Equal(t, settings.State{AutoscrollSpeed: 0, FlattenFiles: true, Theme: theme.Dark}, cfg.Settings)
}

func TestLoadConfig_OverrideFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown extension", "gallery.toml", "port = 1"},
		{"malformed json", "gallery.json", "{"},
		{"invalid theme", "gallery.json", `{"settings": {"theme": "sepia"}}`},
		{"invalid interval", "gallery.yml", "autoscroll_interval: soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := loadConfig(getenvFrom(map[string]string{"GALLERY_CONFIG": path}))
			assert.Error(t, err)
		})
	}

	_, err := loadConfig(getenvFrom(map[string]string{"GALLERY_CONFIG": "/does/not/exist.yaml"}))
	assert.Error(t, err)
}

func TestConfig_Merge_PartialOverride(t *testing.T) {
	t.Parallel()

	cfg := &Config{Port: "8080", Columns: 3, Settings: settings.Defaults()}
	require.NoError(t, cfg.Merge(&ConfigOverride{Columns: settings.Pointer(4)}))

	assert.Equal(t, "8080", cfg.Port, "unset fields keep their value")
	assert.Equal(t, 4, cfg.Columns)
	assert.Equal(t, settings.Defaults(), cfg.Settings)
	assert.NoError(t, cfg.Merge(nil))
}

func TestConfig_SessionOptions(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Columns:            2,
		Loop:               true,
		IgnoredNames:       []string{"x"},
		IngestWorkers:      3,
		AutoscrollInterval: time.Second,
		StopAtBottom:       true,
		Settings:           settings.State{AutoscrollSpeed: 5, Theme: theme.Light},
	}
	opts := cfg.SessionOptions()

	require.NotNil(t, opts.Settings)
	assert.Equal(t, cfg.Settings, *opts.Settings)
	assert.Equal(t, 2, opts.Columns)
	assert.True(t, opts.Loop)
	assert.Equal(t, []string{"x"}, opts.IgnoredNames)
	assert.Equal(t, 3, opts.IngestWorkers)
	assert.Equal(t, time.Second, opts.AutoscrollInterval)
	assert.True(t, opts.StopAtBottom)

	opts.Settings.AutoscrollSpeed = 99
	assert.Equal(t, 5, cfg.Settings.AutoscrollSpeed, "options must not alias the config")
}

func TestGetRoutes(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/health", nil).Methods("GET")
	r.HandleFunc("/api/state", nil).Methods("GET")
	r.HandleFunc("/api/carousel/next", nil).Methods("POST")
	r.PathPrefix("/static/").Handler(nil)

	routes, err := GetRoutes(r)
	require.NoError(t, err)

	assert.Contains(t, routes, RouteInfo{Method: "GET", Path: "/health"})
	assert.Contains(t, routes, RouteInfo{Method: "POST", Path: "/api/carousel/next"})
	assert.Contains(t, routes, RouteInfo{Method: "*", Path: "/static/"})

	LogHTTPRoutes(r, true, false)
}
