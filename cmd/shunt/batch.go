package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"shunt/internal/driver"
	"shunt/internal/ui"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] FILE|-",
	Short: "Convert one expression per line",
	Long: `Batch converts every non-empty line of FILE (or stdin for "-") in parallel.
Lines starting with # are ignored. Results keep the input order.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	addModeFlag(batchCmd)
	batchCmd.Flags().IntP("jobs", "j", 0, "max parallel conversions (0=auto)")
	batchCmd.Flags().String("format", "text", "output format (text|json)")
	batchCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

type batchRecord struct {
	Line       int    `json:"line"`
	Expression string `json:"expression"`
	Notation   string `json:"notation,omitempty"`
	Steps      int    `json:"steps,omitempty"`
	Cached     bool   `json:"cached,omitempty"`
	Error      string `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	e := envFrom(cmd)
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format: %s (expected text|json)", format)
	}
	uiFlag, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	exprs, lines, err := readExpressions(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	opts, err := e.driverOptions(cmd)
	if err != nil {
		return err
	}
	defer closeCache(e, opts.Cache)

	jobs, _ := cmd.Flags().GetInt("jobs")
	if !cmd.Flags().Changed("jobs") {
		jobs = e.cfg.Batch.Jobs
	}
	bopts := driver.BatchOptions{Options: opts, Jobs: jobs}

	var items []driver.BatchItem
	if shouldUseTUI(mode, e.quiet) && len(exprs) > 0 {
		items, err = runBatchWithUI(cmd.Context(), args[0], exprs, bopts)
	} else {
		items, err = driver.ConvertBatch(cmd.Context(), exprs, bopts)
	}
	if err != nil {
		return err
	}

	records := make([]batchRecord, len(items))
	failed := 0
	for i, it := range items {
		rec := batchRecord{Line: lines[i], Expression: it.Expression}
		if it.Err != nil {
			rec.Error = it.Err.Error()
			failed++
		} else {
			rec.Notation = it.Outcome.Result.Notation()
			rec.Steps = len(it.Outcome.Result.Steps)
			rec.Cached = it.Outcome.Cached
		}
		records[i] = rec
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return err
		}
	} else if err := writeBatchText(cmd.OutOrStdout(), records, e.useColor(os.Stdout)); err != nil {
		return err
	}

	e.printTimings(opts.Timer)
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(records))
	}
	return nil
}

func runBatchWithUI(ctx context.Context, title string, exprs []string, opts driver.BatchOptions) ([]driver.BatchItem, error) {
	events := make(chan driver.Event, 256)
	type outcome struct {
		items []driver.BatchItem
		err   error
	}
	outcomeCh := make(chan outcome, 1)

	go func() {
		opts.Events = events
		items, err := driver.ConvertBatch(ctx, exprs, opts)
		outcomeCh <- outcome{items: items, err: err}
		close(events)
	}()

	model := ui.NewBatchModel(title, exprs, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// Drain so ConvertBatch never blocks on a model that quit early.
	go func() {
		for range events {
		}
	}()
	out := <-outcomeCh
	if uiErr != nil {
		return out.items, uiErr
	}
	return out.items, out.err
}

// readExpressions returns the expressions of path ("-" for stdin) and
// their 1-based line numbers.
func readExpressions(path string, stdin io.Reader) ([]string, []int, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		r = f
	}
	var exprs []string
	var lines []int
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exprs = append(exprs, line)
		lines = append(lines, n)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return exprs, lines, nil
}

func writeBatchText(w io.Writer, records []batchRecord, useColor bool) error {
	red := color.New(color.FgRed)
	if useColor {
		red.EnableColor()
	} else {
		red.DisableColor()
	}
	for _, r := range records {
		var err error
		if r.Error != "" {
			_, err = fmt.Fprintf(w, "%d\t%s\t%s\n", r.Line, r.Expression, red.Sprint("error: "+r.Error))
		} else {
			_, err = fmt.Fprintf(w, "%d\t%s\t%s\n", r.Line, r.Expression, r.Notation)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
