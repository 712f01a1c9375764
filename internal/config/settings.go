package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds all configuration options.
type Settings struct {
	// Catalog settings
	CatalogSource string  `json:"catalog_source" yaml:"catalog_source"`
	HTTPTimeout   float64 `json:"http_timeout" yaml:"http_timeout"`
	UserAgent     string  `json:"user_agent" yaml:"user_agent"`
	CacheTTL      float64 `json:"cache_ttl" yaml:"cache_ttl"`
	WatchCatalog  bool    `json:"watch_catalog" yaml:"watch_catalog"`
	WatchDebounce float64 `json:"watch_debounce" yaml:"watch_debounce"`

	// Display settings
	CardWidth    int  `json:"card_width" yaml:"card_width"`
	MouseSupport bool `json:"mouse_support" yaml:"mouse_support"`

	// Server settings
	ServeAddress string `json:"serve_address" yaml:"serve_address"`

	// Logging settings
	LogPath  string `json:"log_path" yaml:"log_path"`
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		CatalogSource: "artworks.json",
		HTTPTimeout:   30,
		UserAgent:     "ArtGalleryViewer",
		CacheTTL:      300,
		WatchCatalog:  true,
		WatchDebounce: 0.5,

		CardWidth:    28,
		MouseSupport: true,

		ServeAddress: ":8080",

		LogPath:  "",
		LogLevel: "info",
	}
}

// Load reads settings from a JSON or YAML file.
//
// Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
// A missing file is not an error: defaults are returned. Fields absent from
// the file keep their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file, chosen by extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Timeout returns the HTTP timeout as a duration.
func (s *Settings) Timeout() time.Duration {
	return seconds(s.HTTPTimeout)
}

// CacheExpiration returns how long a fetched catalog stays cached.
func (s *Settings) CacheExpiration() time.Duration {
	return seconds(s.CacheTTL)
}

// Debounce returns the catalog watcher debounce interval.
func (s *Settings) Debounce() time.Duration {
	return seconds(s.WatchDebounce)
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
