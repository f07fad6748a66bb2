// Package driver runs conversions on behalf of the command line and the
// HTTP server: it normalizes input, consults the result cache, times the
// phases and fans batches out over a bounded worker pool.
package driver

import (
	"context"
	"fmt"

	"shunt/internal/cache"
	"shunt/internal/engine"
	"shunt/internal/logx"
	"shunt/internal/observ"
)

// Options configure a conversion.
type Options struct {
	Mode engine.Mode
	// Cache may be nil.
	Cache cache.Store
	// Timer may be nil.
	Timer *observ.Timer
}

// Outcome is a finished conversion.
type Outcome struct {
	// Expression is the normalized input.
	Expression string
	Result     *engine.Result
	Skipped    []Skip
	Cached     bool
}

// Convert normalizes expr and converts it. Engine errors, including
// *engine.MismatchedParenthesesError, are returned unchanged. Cache
// failures are logged and never fail the conversion.
func Convert(ctx context.Context, expr string, opts Options) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Mode > engine.Prefix {
		return nil, fmt.Errorf("%w: %d", engine.ErrUnknownMode, uint8(opts.Mode))
	}
	logger := logx.FromContext(ctx)
	tm := opts.Timer

	done := tm.Track(observ.PhaseNormalize)
	src := Normalize(expr)
	done("")

	key := cache.Key(opts.Mode, src)
	if opts.Cache != nil {
		done := tm.Track(observ.PhaseCache)
		res, ok, err := opts.Cache.Get(ctx, key)
		switch {
		case err != nil:
			done("error")
			logger.Warn("cache lookup failed", "err", err)
		case ok:
			done("hit")
			logger.Debug("cache hit", "key", key[:12])
			// skips are not cached
			c := &skipCollector{src: src}
			lexerTokens(src, c)
			return &Outcome{Expression: src, Result: res, Skipped: c.skips, Cached: true}, nil
		default:
			done("miss")
		}
	}

	done = tm.Track(observ.PhaseTokenize)
	c := &skipCollector{src: src}
	tokens := lexerTokens(src, c)
	done(fmt.Sprintf("%d tokens", len(tokens)))
	for _, s := range c.skips {
		logger.Debug("skipped character", "text", s.Text, "at", s.Span)
	}

	done = tm.Track(observ.PhaseTrace)
	res, err := engine.RunTokens(tokens, opts.Mode)
	if err != nil {
		done("error")
		return nil, err
	}
	done(fmt.Sprintf("%d steps", len(res.Steps)))

	if opts.Cache != nil {
		if err := opts.Cache.Put(ctx, key, res); err != nil {
			logger.Warn("cache store failed", "err", err)
		}
	}
	return &Outcome{Expression: src, Result: res, Skipped: c.skips}, nil
}
