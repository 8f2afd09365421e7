// Package config loads and saves cashcast configuration, including the
// engine tuning constants.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/cashcast/internal/model"

	"github.com/BurntSushi/toml"
)

// Config holds all cashcast configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	TUI     TUIConfig     `toml:"tui"`
	Tuning  Tuning        `toml:"tuning"`
}

// TUIConfig holds dashboard preferences.
type TUIConfig struct {
	Theme              string `toml:"theme"`
	AutoRefresh        bool   `toml:"auto_refresh"`
	RefreshIntervalSec int    `toml:"refresh_interval_sec"`
}

// GeneralConfig holds forecast preferences.
type GeneralConfig struct {
	Buffer        float64 `toml:"buffer"`
	HorizonDays   int     `toml:"horizon_days"`
	Simulations   int     `toml:"simulations"`
	RiskTolerance string  `toml:"risk_tolerance"`
	Currency      string  `toml:"currency"`
	DBPath        string  `toml:"db_path,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Buffer:        500,
			HorizonDays:   90,
			Simulations:   300,
			RiskTolerance: string(model.RiskModerate),
			Currency:      "USD",
		},
		TUI: TUIConfig{
			Theme:              "flexoki-dark",
			AutoRefresh:        true,
			RefreshIntervalSec: 300,
		},
		Tuning: DefaultTuning(),
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cashcast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cashcast")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDBPath returns the default snapshot database location.
func DefaultDBPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "cashcast", "cashcast.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "cashcast", "cashcast.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// GetRiskTolerance parses the configured tolerance, defaulting to moderate.
func (g GeneralConfig) GetRiskTolerance() model.RiskTolerance {
	switch model.RiskTolerance(g.RiskTolerance) {
	case model.RiskConservative, model.RiskAggressive:
		return model.RiskTolerance(g.RiskTolerance)
	default:
		return model.RiskModerate
	}
}
