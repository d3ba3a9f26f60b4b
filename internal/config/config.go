package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultRefreshSeconds matches the monitor's startup refresh rate.
	DefaultRefreshSeconds = 0.5
	// MinRefreshSeconds and MaxRefreshSeconds bound the operator-adjustable
	// sampling interval.
	MinRefreshSeconds = 0.1
	MaxRefreshSeconds = 5.0
)

var validate = validator.New()

// Config holds the operator-tunable settings, loaded from an optional YAML
// file and overridable by flags.
type Config struct {
	// RefreshSeconds is the initial sampling interval.
	RefreshSeconds float64 `yaml:"refresh_seconds" validate:"gte=0.1,lte=5"`
	// LogFile is where diagnostic logs are written. The UI owns the
	// terminal, so logs never go to stdout.
	LogFile string `yaml:"log_file" validate:"required"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RefreshSeconds: DefaultRefreshSeconds,
		LogFile:        defaultLogFile(),
	}
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "procwatch", "procwatch.log")
}

// Load reads the YAML file at path on top of the defaults. A missing file is
// not an error; a malformed or out-of-range one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ClampRefresh forces an interval into the supported range.
func ClampRefresh(seconds float64) float64 {
	if seconds < MinRefreshSeconds {
		return MinRefreshSeconds
	}
	if seconds > MaxRefreshSeconds {
		return MaxRefreshSeconds
	}
	return seconds
}
