package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/recopy/config.toml
//  2. ~/.config/recopy/config.toml
//
// If no file exists, returns DefaultConfig().
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path. A missing
// file yields the defaults.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader decodes TOML from r over the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
			LogFile:  filepath.Join(xdgStateHome(home), "recopy", "recopy-tui.log"),
			Locale:   "auto",
		},
		Theme: ThemeConfig{
			Name: "default",
		},
		Backend: BackendConfig{
			Socket:  defaultSocketPath(home),
			Timeout: Duration{2 * time.Second},
		},
		List: ListConfig{
			RefreshInterval: Duration{5 * time.Second},
		},
		Preview: PreviewConfig{
			Enabled:      true,
			PollInterval: Duration{100 * time.Millisecond},
		},
		HUD: HUDConfig{
			Duration: Duration{600 * time.Millisecond},
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     filepath.Join(xdgCacheHome(home), "recopy"),
			MaxAge:  Duration{24 * time.Hour},
		},
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RECOPY_LOCALE"); v != "" {
		cfg.General.Locale = v
	}
	if v := os.Getenv("RECOPY_THEME"); v != "" {
		cfg.Theme.Name = v
	}
	if v := os.Getenv("RECOPY_SOCKET"); v != "" {
		cfg.Backend.Socket = v
	}
}

// defaultSocketPath prefers $XDG_RUNTIME_DIR, which is per-user and tmpfs.
func defaultSocketPath(home string) string {
	if v := os.Getenv("XDG_RUNTIME_DIR"); v != "" {
		return filepath.Join(v, "recopy.sock")
	}
	return filepath.Join(xdgStateHome(home), "recopy", "recopy.sock")
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "recopy", "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "recopy", "config.toml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgStateHome returns XDG_STATE_HOME or ~/.local/state as fallback.
func xdgStateHome(home string) string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "state")
}

// xdgCacheHome returns XDG_CACHE_HOME or ~/.cache as fallback.
func xdgCacheHome(home string) string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".cache")
}
