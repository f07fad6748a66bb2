// Package cache stores finished conversion results so that repeated
// expressions skip the engine. Every backend stores the same msgpack
// payload; a payload with a different schema version is treated as a miss.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"shunt/internal/engine"
	"shunt/internal/token"
)

// SchemaVersion is part of every key and payload. Bump it when Payload or
// the engine's step wording changes.
const SchemaVersion uint16 = 1

// Store is a result cache. Implementations are safe for concurrent use.
type Store interface {
	// Get returns the cached result for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) (*engine.Result, bool, error)
	Put(ctx context.Context, key string, res *engine.Result) error
	Close() error
}

// Key derives the cache key of a normalized expression in a mode.
func Key(mode engine.Mode, expr string) string {
	h := sha256.New()
	fmt.Fprintf(h, "shunt/v%d\x00%s\x00", SchemaVersion, mode)
	_, _ = h.Write([]byte(expr))
	return hex.EncodeToString(h.Sum(nil))
}

// Payload is the stored form of a result.
type Payload struct {
	Schema uint16        `msgpack:"schema"`
	Mode   engine.Mode   `msgpack:"mode"`
	Tokens []token.Token `msgpack:"tokens"`
	Steps  []engine.Step `msgpack:"steps"`
}

func encode(res *engine.Result) ([]byte, error) {
	return msgpack.Marshal(&Payload{
		Schema: SchemaVersion,
		Mode:   res.Mode,
		Tokens: res.Tokens,
		Steps:  res.Steps,
	})
}

// decode returns nil for payloads written under another schema.
func decode(data []byte) (*engine.Result, error) {
	var p Payload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode cache payload: %w", err)
	}
	if p.Schema != SchemaVersion || len(p.Steps) < 2 {
		return nil, nil
	}
	return &engine.Result{Mode: p.Mode, Tokens: p.Tokens, Steps: p.Steps}, nil
}

// Null never stores anything.
type Null struct{}

func (Null) Get(context.Context, string) (*engine.Result, bool, error) { return nil, false, nil }
func (Null) Put(context.Context, string, *engine.Result) error         { return nil }
func (Null) Close() error                                              { return nil }

// Backend names a Store implementation in configuration.
type Backend string

const (
	BackendNone  Backend = "none"
	BackendDisk  Backend = "disk"
	BackendRedis Backend = "redis"
)

// ParseBackend accepts none, disk or redis; the empty string means none.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendNone, nil
	case BackendNone, BackendDisk, BackendRedis:
		return b, nil
	default:
		return BackendNone, fmt.Errorf("invalid cache backend: %q (expected: none|disk|redis)", s)
	}
}
