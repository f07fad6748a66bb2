package cache

import (
	"fmt"
	"time"
)

// Config selects and tunes a backend.
type Config struct {
	Backend   Backend
	Dir       string
	TTL       time.Duration
	RedisAddr string
	RedisDB   int
	Prefix    string
}

// Open builds the configured Store.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return Null{}, nil
	case BackendDisk:
		return OpenDisk(cfg.Dir, cfg.TTL)
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("cache backend redis needs an address")
		}
		return NewRedis(cfg.RedisAddr, "", cfg.RedisDB, WithTTL(cfg.TTL), WithPrefix(cfg.Prefix)), nil
	default:
		return nil, fmt.Errorf("invalid cache backend: %q", cfg.Backend)
	}
}
