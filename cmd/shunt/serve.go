package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"shunt/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve [flags]",
	Short: "Serve conversions over HTTP",
	Long: `Serve exposes POST /v1/convert, POST /v1/tokenize, GET /healthz and GET /metrics.
It stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default [server].addr or :8080)")
	serveCmd.Flags().Bool("no-cache", false, "bypass the result cache")
}

func runServe(cmd *cobra.Command, _ []string) error {
	e := envFrom(cmd)
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = e.cfg.Server.Addr
	}

	store, err := e.openCache(cmd)
	if err != nil {
		return err
	}
	defer closeCache(e, store)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := server.New(
		server.WithCache(store),
		server.WithLogger(e.logger),
		server.WithRegistry(reg),
	)
	return srv.ListenAndServe(cmd.Context(), addr)
}
