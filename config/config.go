// Package config provides persisted settings for the carver command line tool.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Seam ordering values understood by the carver.
const (
	OrderVerticalFirst   = "vertical-first"
	OrderHorizontalFirst = "horizontal-first"
	OrderAlternate       = "alternate"
)

// Energy recompute modes.
const (
	RecomputeLocal = "local"
	RecomputeFull  = "full"
)

// Config holds the user's carving defaults. Command line flags override it.
type Config struct {
	Order            string        `json:"order"`
	Energy           string        `json:"energy"`
	Recompute        string        `json:"recompute"`
	FaceProtect      bool          `json:"face_protect"`
	CascadePath      string        `json:"cascade_path"`
	JPEGQuality      int           `json:"jpeg_quality"`
	Workers          int           `json:"workers"`
	ProgressInterval time.Duration `json:"progress_interval"`
}

var (
	instance *Config
	once     sync.Once
)

// GetConfig returns the singleton Config loaded from the user's config file.
// Missing or unreadable files fall back to defaults.
func GetConfig() *Config {
	once.Do(func() {
		cfg, err := Load(GetFilename())
		if err != nil {
			if !os.IsNotExist(err) {
				fmt.Fprintln(os.Stderr, "Error loading config:", err)
			}
			cfg = Default()
		}
		instance = cfg
	})
	return instance
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Order:            OrderVerticalFirst,
		Energy:           "sobel",
		Recompute:        RecomputeLocal,
		FaceProtect:      false,
		JPEGQuality:      95,
		Workers:          4,
		ProgressInterval: 250 * time.Millisecond,
	}
}

// GetPath returns the path to the user's config directory.
func GetPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "." + strings.ToLower(AppName)
	}
	return filepath.Join(homeDir, "."+strings.ToLower(AppName))
}

// GetFilename returns the path to the user's config file.
func GetFilename() string {
	return filepath.Join(GetPath(), ConfigFileName)
}

// Load reads a config file. Fields absent from the file keep their defaults.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", filename, err)
	}
	return cfg, nil
}

// Save writes the config to filename, creating the directory if needed.
func (c *Config) Save(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config data: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate rejects values the carver cannot act on.
func (c *Config) Validate() error {
	switch c.Order {
	case OrderVerticalFirst, OrderHorizontalFirst, OrderAlternate:
	default:
		return fmt.Errorf("unknown order %q", c.Order)
	}
	switch c.Recompute {
	case RecomputeLocal, RecomputeFull:
	default:
		return fmt.Errorf("unknown recompute mode %q", c.Recompute)
	}
	if c.Energy == "" {
		return fmt.Errorf("energy function must be set")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality %d out of range [1, 100]", c.JPEGQuality)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.FaceProtect && c.CascadePath == "" {
		return fmt.Errorf("face protection needs a cascade_path")
	}
	return nil
}
