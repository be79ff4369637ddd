package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config is the root of config.toml.
type Config struct {
	General GeneralConfig `toml:"general"`
	Theme   ThemeConfig   `toml:"theme"`
	Backend BackendConfig `toml:"backend"`
	List    ListConfig    `toml:"list"`
	Preview PreviewConfig `toml:"preview"`
	HUD     HUDConfig     `toml:"hud"`
	Cache   CacheConfig   `toml:"cache"`
}

// GeneralConfig holds process-wide settings.
type GeneralConfig struct {
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
	// Locale is a BCP 47 tag such as "zh-CN"; "auto" reads the environment.
	Locale string `toml:"locale"`
}

// ThemeConfig selects the color theme. File, when set, is a TOML theme that
// takes precedence over Name.
type ThemeConfig struct {
	Name string `toml:"name"`
	File string `toml:"file"`
}

// BackendConfig locates the clipboard daemon.
type BackendConfig struct {
	Socket  string   `toml:"socket"`
	Timeout Duration `toml:"timeout"`
}

// ListConfig controls the history list.
type ListConfig struct {
	RefreshInterval Duration `toml:"refresh_interval"`
}

// PreviewConfig controls preview polling.
type PreviewConfig struct {
	Enabled      bool     `toml:"enabled"`
	PollInterval Duration `toml:"poll_interval"`
}

// HUDConfig controls the "copied" confirmation.
type HUDConfig struct {
	Duration Duration `toml:"duration"`
}

// CacheConfig controls the on-disk copy of the last history listing.
type CacheConfig struct {
	Enabled bool     `toml:"enabled"`
	Dir     string   `toml:"dir"`
	MaxAge  Duration `toml:"max_age"`
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.General.LogLevel); err != nil {
		return err
	}
	if c.Backend.Socket == "" {
		return fmt.Errorf("config: backend.socket must be set")
	}
	if c.Backend.Timeout.Duration <= 0 {
		return fmt.Errorf("config: backend.timeout must be positive")
	}
	if c.List.RefreshInterval.Duration < time.Second {
		return fmt.Errorf("config: list.refresh_interval must be at least 1s, got %s", c.List.RefreshInterval.Duration)
	}
	if c.Preview.Enabled && c.Preview.PollInterval.Duration < 10*time.Millisecond {
		return fmt.Errorf("config: preview.poll_interval must be at least 10ms, got %s", c.Preview.PollInterval.Duration)
	}
	if c.HUD.Duration.Duration <= 0 {
		return fmt.Errorf("config: hud.duration must be positive")
	}
	if c.Cache.Enabled && c.Cache.Dir == "" {
		return fmt.Errorf("config: cache.dir must be set when the cache is enabled")
	}
	return nil
}

// ParseLogLevel maps a config log level to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", s)
	}
}
