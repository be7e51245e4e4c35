// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/timegrid/internal/gridtime"
	"github.com/javiermolinar/timegrid/internal/interaction"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TIMEGRID_"

// DotEnvFile is loaded from the working directory when present.
const DotEnvFile = ".env"

// Config holds the application configuration.
type Config struct {
	Grid        GridConfig        `toml:"grid"`
	Interaction InteractionConfig `toml:"interaction"`
	Storage     StorageConfig     `toml:"storage"`
	UI          UIConfig          `toml:"ui"`
	Log         LogConfig         `toml:"log"`
}

// GridConfig holds the time grid layout.
type GridConfig struct {
	HourStart      int       `toml:"hour_start"`
	HourEnd        int       `toml:"hour_end"`
	MinuteCell     int       `toml:"minute_cell"`
	RatioHourGridY []float64 `toml:"ratio_hour_grid_y"`
	Days           int       `toml:"days"` // columns shown, 1..7
}

// InteractionConfig holds pointer interaction settings.
type InteractionConfig struct {
	DisableDblClick bool `toml:"disable_dbl_click"`
	DisableClick    bool `toml:"disable_click"`
	GuideOnHover    bool `toml:"show_creation_guide_on_hover"`
	GuideOnClick    bool `toml:"show_creation_guide_on_click"`
	HoverDelayMS    int  `toml:"hover_delay_ms"`
	ClickDelayMS    int  `toml:"click_delay_ms"`
	RestoreDelayMS  int  `toml:"restore_delay_ms"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "latte"
}

// LogConfig holds logger settings. An empty File discards output.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // console or json
	File   string `toml:"file"`
}

// Default returns the default configuration.
func Default() *Config {
	grid := gridtime.DefaultOptions()
	ic := interaction.DefaultConfig()
	return &Config{
		Grid: GridConfig{
			HourStart:      grid.HourStart,
			HourEnd:        grid.HourEnd,
			MinuteCell:     grid.MinuteCell,
			RatioHourGridY: grid.RatioHourGridY,
			Days:           7,
		},
		Interaction: InteractionConfig{
			GuideOnHover:   ic.GuideOnHover,
			GuideOnClick:   ic.GuideOnClick,
			HoverDelayMS:   int(ic.HoverDelay / time.Millisecond),
			ClickDelayMS:   int(ic.ClickDelay / time.Millisecond),
			RestoreDelayMS: int(ic.RestoreDelay / time.Millisecond),
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "timegrid.db"
	}
	return filepath.Join(home, ".local", "share", "timegrid", "timegrid.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "timegrid", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, loads .env,
// then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Variables already set in the environment win over .env.
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", DotEnvFile, err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"HOUR_START", &cfg.Grid.HourStart},
		{"HOUR_END", &cfg.Grid.HourEnd},
		{"MINUTE_CELL", &cfg.Grid.MinuteCell},
		{"DAYS", &cfg.Grid.Days},
		{"HOVER_DELAY_MS", &cfg.Interaction.HoverDelayMS},
		{"CLICK_DELAY_MS", &cfg.Interaction.ClickDelayMS},
		{"RESTORE_DELAY_MS", &cfg.Interaction.RestoreDelayMS},
	}
	for _, e := range ints {
		if v := os.Getenv(EnvPrefix + e.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s must be an integer, got %q", EnvPrefix, e.key, v)
			}
			*e.dst = n
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"DISABLE_DBL_CLICK", &cfg.Interaction.DisableDblClick},
		{"DISABLE_CLICK", &cfg.Interaction.DisableClick},
		{"GUIDE_ON_HOVER", &cfg.Interaction.GuideOnHover},
		{"GUIDE_ON_CLICK", &cfg.Interaction.GuideOnClick},
	}
	for _, e := range bools {
		if v := os.Getenv(EnvPrefix + e.key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s must be a boolean, got %q", EnvPrefix, e.key, v)
			}
			*e.dst = b
		}
	}

	if v := os.Getenv(EnvPrefix + "DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv(EnvPrefix + "UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.GridOptions().Validate(); err != nil {
		return err
	}
	if c.Grid.Days < 1 || c.Grid.Days > 7 {
		return fmt.Errorf("days must be between 1 and 7, got %d", c.Grid.Days)
	}
	in := c.Interaction
	if in.HoverDelayMS < 0 || in.ClickDelayMS < 0 || in.RestoreDelayMS < 0 {
		return errors.New("interaction delays cannot be negative")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

// GridOptions converts the grid section to mapper options.
func (c *Config) GridOptions() gridtime.Options {
	return gridtime.Options{
		HourStart:      c.Grid.HourStart,
		HourEnd:        c.Grid.HourEnd,
		MinuteCell:     c.Grid.MinuteCell,
		RatioHourGridY: append([]float64(nil), c.Grid.RatioHourGridY...),
	}
}

// InteractionConfig converts the interaction section to controller settings.
func (c *Config) InteractionConfig() interaction.Config {
	in := c.Interaction
	return interaction.Config{
		DisableDblClick: in.DisableDblClick,
		DisableClick:    in.DisableClick,
		GuideOnHover:    in.GuideOnHover,
		GuideOnClick:    in.GuideOnClick,
		HoverDelay:      time.Duration(in.HoverDelayMS) * time.Millisecond,
		ClickDelay:      time.Duration(in.ClickDelayMS) * time.Millisecond,
		RestoreDelay:    time.Duration(in.RestoreDelayMS) * time.Millisecond,
	}
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
