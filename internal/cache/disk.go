package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"shunt/internal/engine"
)

// Disk keeps one msgpack file per key under dir/results.
type Disk struct {
	mu  sync.RWMutex
	dir string
	ttl time.Duration
	now func() time.Time
}

// DefaultDir returns $XDG_CACHE_HOME/shunt, falling back to ~/.cache/shunt.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "shunt"), nil
}

// OpenDisk creates dir if needed. Entries older than ttl are misses; a
// zero ttl keeps entries forever.
func OpenDisk(dir string, ttl time.Duration) (*Disk, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Disk{dir: dir, ttl: ttl, now: time.Now}, nil
}

// Dir is the cache root.
func (c *Disk) Dir() string { return c.dir }

func (c *Disk) pathFor(key string) string {
	return filepath.Join(c.dir, "results", key+".mp")
}

// Put writes the payload to a temp file and renames it into place.
func (c *Disk) Put(_ context.Context, key string, res *engine.Result) error {
	data, err := encode(res)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads an entry; expired or foreign-schema entries are misses.
func (c *Disk) Get(_ context.Context, key string) (*engine.Result, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	if c.ttl > 0 {
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, false, nil
			}
			return nil, false, err
		}
		if c.now().Sub(info.ModTime()) > c.ttl {
			return nil, false, nil
		}
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	res, err := decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", p, err)
	}
	return res, res != nil, nil
}

// DropAll removes every entry.
func (c *Disk) DropAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	old := filepath.Join(c.dir, "results.old-"+c.now().Format("20060102150405"))
	if err := os.Rename(filepath.Join(c.dir, "results"), old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

func (c *Disk) Close() error { return nil }
