// Package config handles the clockface configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/clockface/internal/clock"
	"github.com/mj1618/clockface/internal/render"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

const (
	maxFPS       = 120
	appDirName   = "clockface"
	defaultName  = "config.yaml"
	envPrefix    = "CLOCKFACE_"
	defaultLevel = "info"
)

// Config is the on-disk configuration. CLI flags override it.
type Config struct {
	Width                 int               `yaml:"width"                  toml:"width"                  json:"width"`
	Height                int               `yaml:"height"                 toml:"height"                 json:"height"`
	Preview               bool              `yaml:"preview"                toml:"preview"                json:"preview"`
	TransparentBackground bool              `yaml:"transparent_background" toml:"transparent_background" json:"transparent_background"`
	FPS                   int               `yaml:"fps"                    toml:"fps"                    json:"fps"`
	Timezone              string            `yaml:"timezone"               toml:"timezone"               json:"timezone"`
	Palette               map[string]string `yaml:"palette,omitempty"      toml:"palette,omitempty"      json:"palette,omitempty"`
	Log                   LogConfig         `yaml:"log"                    toml:"log"                    json:"log"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level      string `yaml:"level"                  toml:"level"        json:"level"`
	Encoding   string `yaml:"encoding"               toml:"encoding"     json:"encoding"`
	File       string `yaml:"file,omitempty"         toml:"file"         json:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"  toml:"max_size_mb"  json:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"  toml:"max_backups"  json:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty" toml:"max_age_days" json:"max_age_days,omitempty"`
	Compress   bool   `yaml:"compress,omitempty"     toml:"compress"     json:"compress,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Width:    512,
		Height:   512,
		FPS:      30,
		Timezone: "Local",
		Log: LogConfig{
			Level:      defaultLevel,
			Encoding:   "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, appDirName, defaultName)
}

// Load reads the file at path, applies environment overrides and validates
// the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := loadConfigFromFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, choosing the format from the extension.
func Save(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var b strings.Builder
		err = toml.NewEncoder(&b).Encode(cfg)
		data = []byte(b.String())
	case ".json":
		data, err = json.MarshalIndent(cfg, "", "  ")
	default:
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// loadConfigFromFile reads and parses a config file based on its extension.
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	}
	return cfg, nil
}

// ApplyEnvOverrides applies CLOCKFACE_* environment variables. Malformed
// numbers are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v, ok := envInt("WIDTH"); ok {
		c.Width = v
	}
	if v, ok := envInt("HEIGHT"); ok {
		c.Height = v
	}
	if v, ok := envInt("FPS"); ok {
		c.FPS = v
	}
	if v := os.Getenv(envPrefix + "TZ"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(envPrefix + "LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

func envInt(name string) (int, bool) {
	v := os.Getenv(envPrefix + name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Validate checks ranges, the timezone, the palette and the log level.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Width > render.MaxDimension {
		return fmt.Errorf("%w: width %d out of range 1-%d", ErrInvalidConfig, c.Width, render.MaxDimension)
	}
	if c.Height <= 0 || c.Height > render.MaxDimension {
		return fmt.Errorf("%w: height %d out of range 1-%d", ErrInvalidConfig, c.Height, render.MaxDimension)
	}
	if c.FPS <= 0 || c.FPS > maxFPS {
		return fmt.Errorf("%w: fps %d out of range 1-%d", ErrInvalidConfig, c.FPS, maxFPS)
	}
	if _, err := clock.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := render.ParsePalette(c.Palette); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	switch c.Log.Encoding {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: unknown log encoding %q", ErrInvalidConfig, c.Log.Encoding)
	}
	return nil
}

// RenderMode returns the mode flags for the renderer.
func (c *Config) RenderMode() render.Mode {
	return render.Mode{Preview: c.Preview, TransparentBackground: c.TransparentBackground}
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return clock.LoadLocation(c.Timezone)
}

// RenderPalette resolves the configured palette overrides.
func (c *Config) RenderPalette() (render.Palette, error) {
	return render.ParsePalette(c.Palette)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Palette != nil {
		out.Palette = make(map[string]string, len(c.Palette))
		for k, v := range c.Palette {
			out.Palette[k] = v
		}
	}
	return &out
}
