package main

import (
	"github.com/spf13/cobra"

	"shunt/internal/prof"
)

// startProfiling enables the profilers requested by the persistent flags.
func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Root().PersistentFlags()
	cpu, _ := flags.GetString("cpu-profile")
	mem, _ := flags.GetString("mem-profile")
	tracePath, _ := flags.GetString("runtime-trace")
	if cpu == "" && mem == "" && tracePath == "" {
		return nil, nil
	}
	return prof.Start(prof.Paths{CPU: cpu, Mem: mem, Trace: tracePath})
}

func stopProfiling(cmd *cobra.Command, _ []string) error {
	return envFrom(cmd).profile.Stop()
}
