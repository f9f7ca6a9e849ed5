package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/artpar/celltree/internal/widget"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds application configuration.
type Config struct {
	Indent        int                        `yaml:"indent"`
	DefaultItem   string                     `yaml:"default_item"`
	FolderItem    string                     `yaml:"folder_item"`
	ClickToExpand int                        `yaml:"click_to_expand"`
	ShowHidden    bool                       `yaml:"show_hidden"`
	Watch         bool                       `yaml:"watch"`
	WatchDebounce time.Duration              `yaml:"watch_debounce"`
	PoolLimit     int                        `yaml:"pool_limit"`
	LogLevel      string                     `yaml:"log_level"`
	LogFile       string                     `yaml:"log_file"`
	Templates     map[string]widget.Template `yaml:"templates"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Indent:        2,
		DefaultItem:   "ui://item",
		FolderItem:    "ui://folder",
		ClickToExpand: 1,
		Watch:         true,
		WatchDebounce: 200 * time.Millisecond,
		LogLevel:      "info",
		Templates: map[string]widget.Template{
			"ui://item":   widget.DefaultTemplate(),
			"ui://folder": widget.DefaultTemplate(),
		},
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field ranges and that the item resources have templates.
func (c Config) Validate() error {
	if c.Indent < 0 {
		return fmt.Errorf("%w: indent %d is negative", ErrInvalidConfig, c.Indent)
	}
	if c.ClickToExpand < 0 || c.ClickToExpand > 2 {
		return fmt.Errorf("%w: click_to_expand must be 0, 1 or 2, got %d", ErrInvalidConfig, c.ClickToExpand)
	}
	if c.PoolLimit < 0 {
		return fmt.Errorf("%w: pool_limit %d is negative", ErrInvalidConfig, c.PoolLimit)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("%w: watch_debounce %s is negative", ErrInvalidConfig, c.WatchDebounce)
	}
	if _, ok := c.Templates[c.DefaultItem]; !ok {
		return fmt.Errorf("%w: default_item %q has no template", ErrInvalidConfig, c.DefaultItem)
	}
	if c.FolderItem != "" {
		if _, ok := c.Templates[c.FolderItem]; !ok {
			return fmt.Errorf("%w: folder_item %q has no template", ErrInvalidConfig, c.FolderItem)
		}
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return level, fmt.Errorf("log_level %q: %w", s, err)
	}
	return level, nil
}
