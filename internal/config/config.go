// Package config loads shunt.toml.
//
//	[convert]
//	mode = "prefix"
//
//	[output]
//	format = "pretty"
//	color = "auto"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[batch]
//	jobs = 8
//
//	[server]
//	addr = ":8080"
//
//	[advisor]
//	endpoint = "http://localhost:9000/comment"
//	timeout = "2s"
//	max_steps = 32
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"shunt/internal/cache"
	"shunt/internal/engine"
	"shunt/internal/tracefmt"
)

// FileName is the name searched for by Find.
const FileName = "shunt.toml"

// Duration decodes TOML strings such as "1m30s".
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

type Config struct {
	// Path is the file the config came from; empty for defaults.
	Path    string        `toml:"-"`
	Convert ConvertConfig `toml:"convert"`
	Output  OutputConfig  `toml:"output"`
	Cache   CacheConfig   `toml:"cache"`
	Batch   BatchConfig   `toml:"batch"`
	Server  ServerConfig  `toml:"server"`
	Advisor AdvisorConfig `toml:"advisor"`
}

type ConvertConfig struct {
	Mode string `toml:"mode"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
	Prefix    string   `toml:"prefix"`
}

type BatchConfig struct {
	Jobs int `toml:"jobs"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type AdvisorConfig struct {
	Endpoint string   `toml:"endpoint"`
	Timeout  Duration `toml:"timeout"`
	MaxSteps int      `toml:"max_steps"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Convert: ConvertConfig{Mode: "postfix"},
		Output:  OutputConfig{Format: "pretty", Color: "auto"},
		Cache:   CacheConfig{Backend: string(cache.BackendNone)},
		Server:  ServerConfig{Addr: ":8080"},
		Advisor: AdvisorConfig{Timeout: Duration{2 * time.Second}, MaxSteps: 64},
	}
}

// Find walks up from startDir looking for shunt.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("cache", "backend") && strings.EqualFold(cfg.Cache.Backend, string(cache.BackendRedis)) &&
		!meta.IsDefined("cache", "redis_addr") {
		return Config{}, fmt.Errorf("%s: [cache].backend = \"redis\" needs [cache].redis_addr", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Discover loads explicit when it is set, otherwise the nearest shunt.toml
// above startDir, otherwise the defaults.
func Discover(startDir, explicit string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if _, err := c.Mode(); err != nil {
		return fmt.Errorf("[convert].mode: %w", err)
	}
	if _, err := tracefmt.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("[output].format: %w", err)
	}
	switch strings.ToLower(c.Output.Color) {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color: invalid value %q (expected: auto|on|off)", c.Output.Color)
	}
	if _, err := cache.ParseBackend(c.Cache.Backend); err != nil {
		return fmt.Errorf("[cache].backend: %w", err)
	}
	if c.Cache.TTL.Duration < 0 {
		return fmt.Errorf("[cache].ttl must not be negative")
	}
	if c.Cache.RedisDB < 0 {
		return fmt.Errorf("[cache].redis_db must not be negative")
	}
	if c.Batch.Jobs < 0 {
		return fmt.Errorf("[batch].jobs must not be negative")
	}
	if c.Advisor.Timeout.Duration < 0 {
		return fmt.Errorf("[advisor].timeout must not be negative")
	}
	if c.Advisor.MaxSteps < 0 {
		return fmt.Errorf("[advisor].max_steps must not be negative")
	}
	return nil
}

// Mode parses [convert].mode.
func (c Config) Mode() (engine.Mode, error) {
	return engine.ParseMode(c.Convert.Mode)
}

// CacheStore translates [cache] for cache.Open.
func (c Config) CacheStore() (cache.Config, error) {
	backend, err := cache.ParseBackend(c.Cache.Backend)
	if err != nil {
		return cache.Config{}, err
	}
	return cache.Config{
		Backend:   backend,
		Dir:       c.Cache.Dir,
		TTL:       c.Cache.TTL.Duration,
		RedisAddr: c.Cache.RedisAddr,
		RedisDB:   c.Cache.RedisDB,
		Prefix:    c.Cache.Prefix,
	}, nil
}
