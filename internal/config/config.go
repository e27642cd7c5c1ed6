// Package config loads ontoview settings.
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file at $XDG_CONFIG_HOME/ontoview/config.toml
//     (or ~/.config/ontoview/config.toml, or $ONTOVIEW_CONFIG)
//  3. ONTOVIEW_* environment variables ([Config.ApplyEnv])
//
// Command-line flags override all three and are applied by the CLI.
//
// Example file:
//
//	language = "de"
//	direction = "horizontal"
//	document = "https://example.org/pizza.owl"
//
//	[layout]
//	node_width = 120
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	session_ttl = "1h"
package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ontoview/pkg/cache"
	"github.com/matzehuels/ontoview/pkg/errors"
	"github.com/matzehuels/ontoview/pkg/layout"
)

const appName = "ontoview"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete ontoview configuration.
type Config struct {
	Language  string `toml:"language"`
	Direction string `toml:"direction"`
	// Document is loaded when a command gets no document argument. Empty
	// means the built-in sample ontology.
	Document string `toml:"document"`

	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig holds layout metrics. Zero values use the layout defaults.
type LayoutConfig struct {
	NodeWidth   float64 `toml:"node_width"`
	LevelHeight float64 `toml:"level_height"`
	CharWidth   float64 `toml:"char_width"`
	Padding     float64 `toml:"padding"`
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"` // file backend; empty for the user cache dir
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"` // key scope for deployments sharing one redis
}

// ServerConfig configures `ontoview serve`.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	SessionTTL      Duration `toml:"session_ttl"`
	CleanupInterval Duration `toml:"cleanup_interval"`
	MaxUploadBytes  int64    `toml:"max_upload_bytes"`
}

// Duration is a time.Duration written as a Go duration string ("90m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Language:  "en",
		Direction: string(layout.Vertical),
		Cache: CacheConfig{
			Backend: BackendFile,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			SessionTTL:      Duration{2 * time.Hour},
			CleanupInterval: Duration{5 * time.Minute},
			MaxUploadBytes:  32 << 20,
		},
	}
}

// =============================================================================
// Loading
// =============================================================================

// Path returns the config file location: $ONTOVIEW_CONFIG if set,
// otherwise config.toml in the XDG config directory.
func Path() (string, error) {
	if p := os.Getenv("ONTOVIEW_CONFIG"); p != "" {
		return p, nil
	}
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path over the defaults and applies environment
// overrides. A missing file is not an error; unknown keys are.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" && exists(path) {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return cfg, errors.New(errors.ErrCodeInvalidInput,
				"config %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, cfg.Validate()
}

// LoadDefault is [Load] at [Path].
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnv(os.Getenv)
		return cfg, cfg.Validate()
	}
	return Load(path)
}

// ApplyEnv overrides fields from ONTOVIEW_* variables read through getenv.
// Malformed numbers are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	envStr(getenv, "ONTOVIEW_LANGUAGE", &c.Language)
	envStr(getenv, "ONTOVIEW_DIRECTION", &c.Direction)
	envStr(getenv, "ONTOVIEW_DOCUMENT", &c.Document)
	envStr(getenv, "ONTOVIEW_CACHE", &c.Cache.Backend)
	envStr(getenv, "ONTOVIEW_CACHE_DIR", &c.Cache.Dir)
	envStr(getenv, "ONTOVIEW_REDIS_ADDR", &c.Cache.RedisAddr)
	envStr(getenv, "ONTOVIEW_REDIS_PASSWORD", &c.Cache.RedisPassword)
	envStr(getenv, "ONTOVIEW_CACHE_PREFIX", &c.Cache.Prefix)
	envStr(getenv, "ONTOVIEW_SERVER_ADDR", &c.Server.Addr)

	if v := getenv("ONTOVIEW_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Cache.RedisDB = n
		}
	}
	if v := getenv("ONTOVIEW_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Server.SessionTTL = Duration{d}
		}
	}
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if err := errors.ValidateLanguage(c.Language); err != nil {
		return err
	}
	if _, err := layout.ParseDirection(c.Direction); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDirection, err, "config")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache backend redis requires redis_addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	l := c.Layout
	if l.NodeWidth < 0 || l.LevelHeight < 0 || l.CharWidth < 0 || l.Padding < 0 || l.Width < 0 || l.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout metrics must not be negative")
	}
	if c.Server.SessionTTL.Duration < 0 || c.Server.CleanupInterval.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server durations must not be negative")
	}
	return nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// =============================================================================
// Derived Values
// =============================================================================

// LayoutOptions converts the layout section.
func (c Config) LayoutOptions() layout.Options {
	dir, _ := layout.ParseDirection(c.Direction)
	return layout.Options{
		NodeWidth:   c.Layout.NodeWidth,
		LevelHeight: c.Layout.LevelHeight,
		CharWidth:   c.Layout.CharWidth,
		Padding:     c.Layout.Padding,
		Width:       c.Layout.Width,
		Height:      c.Layout.Height,
		Direction:   dir,
	}
}

// Open creates the configured cache and its keyer.
func (c CacheConfig) Open(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewDefaultKeyer()
	if c.Prefix != "" {
		keyer = cache.NewScopedKeyer(keyer, c.Prefix)
	}
	switch c.Backend {
	case BackendNone:
		return cache.NewNullCache(), keyer, nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return rc, keyer, nil
	default:
		fc, err := cache.NewFileCache(c.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file cache: %w", err)
		}
		return fc, keyer, nil
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func envStr(getenv func(string) string, key string, dst *string) {
	if v := getenv(key); v != "" {
		*dst = v
	}
}
