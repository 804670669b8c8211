package startup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"media-gallery/internal/settings"

	"gopkg.in/yaml.v3"
)

// ConfigOverride uses pointer fields to distinguish between unset and zero
// values when loading a partial configuration file. See [Config] for field
// descriptions.
type ConfigOverride struct {
	GalleryDir         *string   `yaml:"gallery_dir,omitempty" json:"gallery_dir,omitempty"`
	Bind               *string   `yaml:"bind,omitempty" json:"bind,omitempty"`
	Port               *string   `yaml:"port,omitempty" json:"port,omitempty"`
	MetricsEnabled     *bool     `yaml:"metrics_enabled,omitempty" json:"metrics_enabled,omitempty"`
	Columns            *int      `yaml:"columns,omitempty" json:"columns,omitempty"`
	Loop               *bool     `yaml:"loop,omitempty" json:"loop,omitempty"`
	IgnoredNames       *[]string `yaml:"ignore,omitempty" json:"ignore,omitempty"`
	AutoscrollInterval *string   `yaml:"autoscroll_interval,omitempty" json:"autoscroll_interval,omitempty"`
	StopAtBottom       *bool     `yaml:"autoscroll_stop_at_bottom,omitempty" json:"autoscroll_stop_at_bottom,omitempty"`
	IngestWorkers      *int      `yaml:"ingest_workers,omitempty" json:"ingest_workers,omitempty"`
	LogHTTP            *bool     `yaml:"log_http,omitempty" json:"log_http,omitempty"`

	Settings settings.Patch `yaml:"settings,omitempty" json:"settings,omitempty"`
}

// Merge applies non-nil values from override onto this Config. The settings
// patch is validated like any other settings update.
func (c *Config) Merge(override *ConfigOverride) error {
	if override == nil {
		return nil
	}
	if override.GalleryDir != nil {
		c.GalleryDir = *override.GalleryDir
	}
	if override.Bind != nil {
		c.Bind = *override.Bind
	}
	if override.Port != nil {
		c.Port = *override.Port
	}
	if override.MetricsEnabled != nil {
		c.MetricsEnabled = *override.MetricsEnabled
	}
	if override.Columns != nil {
		c.Columns = *override.Columns
	}
	if override.Loop != nil {
		c.Loop = *override.Loop
	}
	if override.IgnoredNames != nil {
		c.IgnoredNames = append([]string{}, *override.IgnoredNames...)
	}
	if override.AutoscrollInterval != nil {
		d, err := time.ParseDuration(*override.AutoscrollInterval)
		if err != nil {
			return fmt.Errorf("autoscroll_interval: %w", err)
		}
		c.AutoscrollInterval = d
	}
	if override.StopAtBottom != nil {
		c.StopAtBottom = *override.StopAtBottom
	}
	if override.IngestWorkers != nil {
		c.IngestWorkers = *override.IngestWorkers
	}
	if override.LogHTTP != nil {
		c.LogHTTP = *override.LogHTTP
	}

	next, err := c.Settings.Apply(override.Settings)
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	c.Settings = next
	return nil
}

// LoadConfigOverrideFile loads configuration overrides from a file without
// merging. Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}
