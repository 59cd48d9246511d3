// Package config loads side-by-side settings from a TOML file with
// environment variable overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/treykane/side-by-side/internal/logging"
)

const (
	configDirName  = ".side-by-side"
	configFileName = "config.toml"

	envDoubleTapMS  = "SIDE_BY_SIDE_DOUBLE_TAP_MS"
	envGlamourStyle = "SIDE_BY_SIDE_GLAMOUR_STYLE"
)

// Defaults, in terminal cells where a size is involved.
const (
	DefaultDividerWidth      = 1
	DefaultDividerHeight     = 3
	DefaultDoubleTapWindowMS = 500
	DefaultMinPaneWidth      = 8
	DefaultGlamourStyle      = "dark"

	maxDoubleTapWindowMS = 5000
)

var configLog = logging.New("config")

// Config stores user-defined settings.
type Config struct {
	Divider           DividerConfig `toml:"divider"`
	DoubleTapWindowMS int           `toml:"double_tap_window_ms"`
	// MinPaneWidth bounds drags so neither pane shrinks below it. Zero turns
	// clamping off and lets a pane collapse entirely.
	MinPaneWidth int    `toml:"min_pane_width"`
	GlamourStyle string `toml:"glamour_style"`
	WatchFiles   bool   `toml:"watch_files"`
}

// DividerConfig is the divider handle size.
type DividerConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Divider:           DividerConfig{Width: DefaultDividerWidth, Height: DefaultDividerHeight},
		DoubleTapWindowMS: DefaultDoubleTapWindowMS,
		MinPaneWidth:      DefaultMinPaneWidth,
		GlamourStyle:      DefaultGlamourStyle,
		WatchFiles:        true,
	}
}

// DoubleTapWindow returns the configured window as a duration.
func (c Config) DoubleTapWindow() time.Duration {
	return time.Duration(c.DoubleTapWindowMS) * time.Millisecond
}

// ConfigPath returns the default configuration file path.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// Load reads the configuration at path, or at ConfigPath when path is empty.
// A missing file is not an error: defaults are used. Environment overrides
// are applied last and the result is validated.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		configLog.Debug("no config file, using defaults", "path", path)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	cfg.GlamourStyle = strings.ToLower(strings.TrimSpace(cfg.GlamourStyle))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save validates cfg and writes it to path, or to ConfigPath when path is
// empty.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	configLog.Info("saved config", "path", path)
	return nil
}

// Validate returns every problem with the configuration joined together.
func (c Config) Validate() error {
	var errs []error
	if c.Divider.Width < 1 {
		errs = append(errs, fmt.Errorf("divider.width=%d must be at least 1", c.Divider.Width))
	}
	if c.Divider.Height < 1 {
		errs = append(errs, fmt.Errorf("divider.height=%d must be at least 1", c.Divider.Height))
	}
	if c.DoubleTapWindowMS < 1 || c.DoubleTapWindowMS > maxDoubleTapWindowMS {
		errs = append(errs, fmt.Errorf("double_tap_window_ms=%d must be between 1 and %d", c.DoubleTapWindowMS, maxDoubleTapWindowMS))
	}
	if c.MinPaneWidth < 0 {
		errs = append(errs, fmt.Errorf("min_pane_width=%d must not be negative", c.MinPaneWidth))
	}
	switch c.GlamourStyle {
	case "dark", "light", "notty", "auto":
	default:
		errs = append(errs, fmt.Errorf("glamour_style=%q must be one of dark, light, notty, auto", c.GlamourStyle))
	}
	return errors.Join(errs...)
}

func applyEnvOverrides(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(envDoubleTapMS)); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", envDoubleTapMS, v, err)
		}
		cfg.DoubleTapWindowMS = ms
	}
	if v := strings.TrimSpace(os.Getenv(envGlamourStyle)); v != "" {
		cfg.GlamourStyle = v
	}
	return nil
}
