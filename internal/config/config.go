// Package config loads the engine configuration shared by the trmorph
// commands and builds the engine it describes.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/az-ai-labs/tr-morph/internal/journal"
	"github.com/az-ai-labs/tr-morph/morph"
)

// EnvPath names the environment variable consulted by Path.
const EnvPath = "TRMORPH_CONFIG"

// DefaultPath is used when neither a flag nor EnvPath names a file.
const DefaultPath = "trmorph.yaml"

// Server configures cmd/server.
type Server struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Config holds engine and command settings.
type Config struct {
	// Lexicon is a lexicon file path. Empty means the embedded lexicon.
	Lexicon string `yaml:"lexicon"`

	// Rules is an orthographic rule table path. Empty means the default table.
	Rules string `yaml:"rules"`

	// CacheSize bounds the analysis cache. Zero means unbounded.
	CacheSize int `yaml:"cache_size"`

	// Journal is a directory for runtime additions. Empty disables it.
	Journal string `yaml:"journal"`

	LogLevel string `yaml:"log_level"`
	Server   Server `yaml:"server"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Server: Server{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Path returns flagValue if set, else $TRMORPH_CONFIG, else DefaultPath.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the configuration at path. If the file does not exist,
// defaults are returned. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// NewLogger returns a text logger writing to w at the named level.
// Unknown levels fall back to info.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// OpenEngine builds the engine described by c. The returned close function
// releases the journal, if any, and must be called once the engine is no
// longer used.
func OpenEngine(c *Config, logger *slog.Logger) (*morph.Engine, func() error, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts := []morph.Option{morph.WithLogger(logger)}

	if c.Rules != "" {
		rs, err := morph.LoadRules(c.Rules)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, morph.WithRules(rs))
	}
	if c.CacheSize > 0 {
		cache, err := morph.NewLRUCache(c.CacheSize)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, morph.WithCache(cache))
	}

	closeFn := func() error { return nil }
	if c.Journal != "" {
		j, err := journal.Open(c.Journal, logger)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, morph.WithJournal(j))
		closeFn = j.Close
	}

	var (
		e   *morph.Engine
		err error
	)
	if c.Lexicon != "" {
		e, err = morph.Load(c.Lexicon, opts...)
	} else {
		e, err = morph.NewDefault(opts...)
	}
	if err != nil {
		return nil, nil, errors.Join(err, closeFn())
	}
	return e, closeFn, nil
}
