package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shunt/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the result cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached result from the disk cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e := envFrom(cmd)
		d, err := cache.OpenDisk(e.cfg.Cache.Dir, 0)
		if err != nil {
			return err
		}
		if err := d.DropAll(); err != nil {
			return err
		}
		if !e.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", d.Dir())
		}
		return nil
	},
}

var cachePingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the configured redis cache answers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e := envFrom(cmd)
		cc, err := e.cfg.CacheStore()
		if err != nil {
			return err
		}
		if cc.Backend != cache.BackendRedis {
			return fmt.Errorf("cache backend is %q; ping only applies to redis", cc.Backend)
		}
		r := cache.NewRedis(cc.RedisAddr, "", cc.RedisDB)
		defer r.Close()
		ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Second)
		defer cancel()
		if err := r.Ping(ctx); err != nil {
			return fmt.Errorf("redis %s: %w", cc.RedisAddr, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "redis %s ok\n", cc.RedisAddr)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cachePingCmd)
}
