package devserver

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the optional webvideo-dev.yaml configuration.
type Config struct {
	// Addr is the listen address for the harness server.
	Addr string `yaml:"addr"`
	// MediaDir is the directory served under /media/.
	MediaDir string `yaml:"media_dir"`
	// HLSScriptURL is the hls.js script injected into the harness page.
	// Point it at a nonexistent path to exercise the missing-script path.
	HLSScriptURL string        `yaml:"hls_script_url"`
	Logging      LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls the slog setup.
type LoggingConfig struct {
	// Level is one of: debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Addr:         ":8780",
		MediaDir:     "media",
		HLSScriptURL: "https://cdn.jsdelivr.net/npm/hls.js@1",
		Logging:      LoggingConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads the yaml config at path. A missing file yields defaults;
// fields absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultConfig().Addr
	}
	if cfg.MediaDir == "" {
		cfg.MediaDir = DefaultConfig().MediaDir
	}
	return cfg, nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (c LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a slog.Logger per the logging config.
func (c LoggingConfig) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
