package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"shunt/internal/cache"
	"shunt/internal/driver"
	"shunt/internal/observ"
)

// addModeFlag registers --mode on cmd; the default comes from shunt.toml.
func addModeFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("mode", "m", "postfix", "target notation (postfix|prefix)")
	cmd.Flags().Bool("no-cache", false, "bypass the result cache")
}

// openCache opens the configured cache unless --no-cache is set.
func (e *env) openCache(cmd *cobra.Command) (cache.Store, error) {
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		return cache.Null{}, nil
	}
	cc, err := e.cfg.CacheStore()
	if err != nil {
		return nil, err
	}
	store, err := cache.Open(cc)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	e.logger.Debug("cache", "backend", cc.Backend)
	return store, nil
}

// driverOptions merges flags and config into driver.Options. The caller
// closes the returned cache.
func (e *env) driverOptions(cmd *cobra.Command) (driver.Options, error) {
	mode, err := e.mode(cmd)
	if err != nil {
		return driver.Options{}, err
	}
	store, err := e.openCache(cmd)
	if err != nil {
		return driver.Options{}, err
	}
	opts := driver.Options{Mode: mode, Cache: store}
	if e.timings {
		opts.Timer = observ.NewTimer()
	}
	return opts, nil
}

func closeCache(e *env, s cache.Store) {
	if s == nil {
		return
	}
	if err := s.Close(); err != nil {
		e.logger.Warn("close cache", "err", err)
	}
}

// printTimings writes the timer summary to stderr when --timings is set.
func (e *env) printTimings(t *observ.Timer) {
	if !e.timings || t == nil {
		return
	}
	writeTimings(os.Stderr, t)
}

func writeTimings(out io.Writer, t *observ.Timer) {
	if _, err := io.WriteString(out, t.Summary()); err != nil {
		panic(err)
	}
}

// printSkipped warns about characters the tokenizer ignored.
func (e *env) printSkipped(skips []driver.Skip) {
	if e.quiet {
		return
	}
	for _, s := range skips {
		e.logger.Warn("ignored character", "text", fmt.Sprintf("%q", s.Text), "at", s.Span.String())
	}
}
