// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/soltana/internal/adapter/output"
	"github.com/jmylchreest/soltana/internal/preview"
	"github.com/jmylchreest/soltana/internal/style"
	"github.com/jmylchreest/soltana/internal/theme"
)

// Default configuration values.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultFormat = "plain"

	minPreviewSize = 64
	maxPreviewSize = 4096
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "100ms", "1s", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '100ms', '1s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML serialization.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config represents the soltana configuration.
type Config struct {
	Theme     ThemeConfig     `toml:"theme"`
	Preview   PreviewConfig   `toml:"preview"`
	Watch     WatchConfig     `toml:"watch"`
	Output    OutputConfig    `toml:"output"`
	TUI       TUIConfig       `toml:"tui"`
	Clipboard ClipboardConfig `toml:"clipboard"`
}

// ThemeConfig holds theme selection options.
type ThemeConfig struct {
	Default   string `toml:"default"`    // Theme applied when none is named
	StylesDir string `toml:"styles_dir"` // Extra directory searched for .mplstyle files
}

// PreviewConfig holds preview render defaults.
type PreviewConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Chart  string `toml:"chart"` // line, bar, scatter, histogram, box, heatmap
}

// WatchConfig holds hot reload settings.
type WatchConfig struct {
	Debounce Duration `toml:"debounce"` // e.g., "100ms" or 100
}

// OutputConfig holds default output options.
type OutputConfig struct {
	Format  string `toml:"format"`  // plain, json, yaml, swatch
	Resolve bool   `toml:"resolve"` // Print resolved #rrggbb colors
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp bool `toml:"show_help"`
}

// ClipboardConfig holds clipboard settings (TUI only).
type ClipboardConfig struct {
	Command string `toml:"command"` // Auto-detected if empty
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{
			Default: theme.DefaultTheme,
		},
		Preview: PreviewConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Chart:  string(preview.ChartLine),
		},
		Watch: WatchConfig{
			Debounce: Duration(style.DefaultDebounce),
		},
		Output: OutputConfig{
			Format: DefaultFormat,
		},
		TUI: TUIConfig{
			ShowHelp: true,
		},
		Clipboard: ClipboardConfig{
			Command: "", // Auto-detect
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "soltana", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Theme.StylesDir = expandPath(cfg.Theme.StylesDir)

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Theme.Default != "" && !theme.IsTheme(c.Theme.Default) {
		return fmt.Errorf("invalid default theme %q, must be one of: %s",
			c.Theme.Default, strings.Join(theme.Themes(), ", "))
	}

	if _, err := preview.ParseChart(c.Preview.Chart); err != nil {
		return fmt.Errorf("invalid preview chart: %w", err)
	}
	if c.Preview.Width < minPreviewSize || c.Preview.Width > maxPreviewSize {
		return fmt.Errorf("preview width must be between %d and %d, got %d", minPreviewSize, maxPreviewSize, c.Preview.Width)
	}
	if c.Preview.Height < minPreviewSize || c.Preview.Height > maxPreviewSize {
		return fmt.Errorf("preview height must be between %d and %d, got %d", minPreviewSize, maxPreviewSize, c.Preview.Height)
	}

	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch debounce must not be negative, got %s", c.Watch.Debounce.Duration())
	}

	if !slices.Contains(output.ValidFormats(), c.Output.Format) {
		return fmt.Errorf("invalid output format %q, must be one of: %s",
			c.Output.Format, strings.Join(output.ValidFormats(), ", "))
	}

	return nil
}

// PreviewOptions returns the render options configured for previews.
func (c *Config) PreviewOptions() preview.Options {
	return preview.Options{
		Width:  c.Preview.Width,
		Height: c.Preview.Height,
		Chart:  preview.Chart(c.Preview.Chart),
	}
}

// ResolveStyle maps a stylesheet name to a path under the configured styles
// directory when such a file exists. Other names are returned unchanged so the
// style engine can resolve them.
func (c *Config) ResolveStyle(name string) string {
	if c.Theme.StylesDir == "" || strings.ContainsAny(name, `/\`) {
		return name
	}
	file := name
	if !strings.HasSuffix(file, style.Extension) {
		file += style.Extension
	}
	path := filepath.Join(c.Theme.StylesDir, file)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return name
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
