package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"shunt/internal/driver"
	"shunt/internal/observ"
	"shunt/internal/tracefmt"
)

var traceCmd = &cobra.Command{
	Use:   "trace [flags] EXPR...",
	Short: "Print every step of a conversion",
	Long: `Trace prints the recorded steps of a conversion. Machine formats (json, ndjson,
yaml, msgpack) contain the full location map of every step and can be loaded
again with "shunt replay --load".`,
	Example: `  shunt trace "A ^ B ^ C"
  shunt trace --format json --mode prefix "A * ( B + C )" > trace.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTrace,
}

func init() {
	addModeFlag(traceCmd)
	traceCmd.Flags().StringP("format", "f", "", "output format (pretty|json|ndjson|yaml|msgpack|markdown)")
	traceCmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")
}

func runTrace(cmd *cobra.Command, args []string) (err error) {
	e := envFrom(cmd)
	formatFlag, _ := cmd.Flags().GetString("format")
	if formatFlag == "" {
		formatFlag = e.cfg.Output.Format
	}
	format, err := tracefmt.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	opts, err := e.driverOptions(cmd)
	if err != nil {
		return err
	}
	defer closeCache(e, opts.Cache)

	expr := expressionArg(args)
	out, err := driver.Convert(cmd.Context(), expr, opts)
	if err != nil {
		return wrapInput(driver.Normalize(expr), err)
	}
	e.printSkipped(out.Skipped)

	dest := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, ferr := os.Create(path)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close %s: %w", path, cerr)
			}
		}()
		dest = f
	} else if format.Binary() && isTerminalWriter(dest) {
		return fmt.Errorf("refusing to write %s to a terminal; use --output or redirect", format)
	}

	done := opts.Timer.Track(observ.PhaseFormat)
	terminal := isTerminalWriter(dest)
	colored := e.color == "on" || (e.color != "off" && terminal)
	err = tracefmt.Write(dest, out.Result, format, tracefmt.Options{
		Color:   colored,
		Glamour: terminal,
		Width:   writerWidth(dest),
	})
	done(format.String())
	if err != nil {
		return err
	}
	e.printTimings(opts.Timer)
	return nil
}

// isTerminalWriter reports whether w is a terminal file.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func writerWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		return terminalWidth(f)
	}
	return 80
}
