package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"shunt/internal/config"
	"shunt/internal/engine"
	"shunt/internal/logx"
	"shunt/internal/prof"
	"shunt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "shunt",
	Short: "Convert infix expressions to postfix or prefix, step by step",
	Long: `shunt runs the shunting-yard algorithm over an infix expression and records
every move a token makes between the input, the operator stack and the output.
The trace can be printed, exported, served over HTTP or replayed interactively.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE:  setupEnv,
	PersistentPostRunE: stopProfiling,
}

func main() {
	wireRoot()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

var wireOnce sync.Once

// wireRoot registers subcommands and persistent flags.
func wireRoot() {
	wireOnce.Do(func() {
		rootCmd.Version = version.Get().Version

		rootCmd.AddCommand(convertCmd)
		rootCmd.AddCommand(traceCmd)
		rootCmd.AddCommand(tokenizeCmd)
		rootCmd.AddCommand(batchCmd)
		rootCmd.AddCommand(replayCmd)
		rootCmd.AddCommand(serveCmd)
		rootCmd.AddCommand(cacheCmd)
		rootCmd.AddCommand(versionCmd)

		rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
		rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
		rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
		rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
		rootCmd.PersistentFlags().String("config", "", "path to shunt.toml (default: nearest one above the working directory)")
		rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
		rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
		rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to file")
	})
}

// env is what every subcommand needs after flags and config are merged.
type env struct {
	cfg     config.Config
	logger  *log.Logger
	color   string
	quiet   bool
	timings bool
	profile *prof.Session
}

type envKey struct{}

func setupEnv(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	verbose, _ := flags.GetBool("verbose")
	quiet, _ := flags.GetBool("quiet")
	timings, _ := flags.GetBool("timings")
	configPath, _ := flags.GetString("config")
	colorFlag, _ := flags.GetString("color")

	logger := logx.New(os.Stderr, logx.Level(verbose, quiet))

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Discover(wd, configPath)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}

	if colorFlag == "" {
		colorFlag = cfg.Output.Color
	}
	switch strings.ToLower(colorFlag) {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	applyColor(colorFlag)

	session, err := startProfiling(cmd)
	if err != nil {
		return err
	}

	e := &env{cfg: cfg, logger: logger, color: strings.ToLower(colorFlag), quiet: quiet, timings: timings, profile: session}
	ctx := logx.WithLogger(cmd.Context(), logger)
	cmd.SetContext(context.WithValue(ctx, envKey{}, e))
	return nil
}

func envFrom(cmd *cobra.Command) *env {
	if e, ok := cmd.Context().Value(envKey{}).(*env); ok {
		return e
	}
	return &env{cfg: config.Default(), logger: log.Default(), color: "auto"}
}

// useColor resolves --color for one output file.
func (e *env) useColor(f *os.File) bool {
	switch e.color {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

func applyColor(mode string) {
	switch strings.ToLower(mode) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}
}

// mode resolves --mode against [convert].mode.
func (e *env) mode(cmd *cobra.Command) (engine.Mode, error) {
	if f := cmd.Flags().Lookup("mode"); f != nil && f.Changed {
		return engine.ParseMode(f.Value.String())
	}
	return e.cfg.Mode()
}

func expressionArg(args []string) string {
	return strings.Join(args, " ")
}

var errorLabel = color.New(color.FgRed, color.Bold)

// reportError prints err. Parenthesis mismatches are input feedback and
// point at the offending token when the expression is known.
func reportError(w io.Writer, err error) {
	var in *inputError
	if errors.As(err, &in) {
		fmt.Fprintf(w, "%s %v\n", errorLabel.Sprint("input error:"), in.err)
		var mm *engine.MismatchedParenthesesError
		if errors.As(in.err, &mm) && !mm.Span.Empty() && int(mm.Span.End) <= len(in.expr) {
			fmt.Fprintf(w, "  %s\n  %s%s\n", in.expr,
				strings.Repeat(" ", runewidth.StringWidth(in.expr[:mm.Span.Start])),
				strings.Repeat("^", max(1, runewidth.StringWidth(in.expr[mm.Span.Start:mm.Span.End]))))
		}
		return
	}
	fmt.Fprintf(w, "%s %v\n", errorLabel.Sprint("error:"), err)
}

// inputError ties an engine error to the normalized expression it came from.
type inputError struct {
	expr string
	err  error
}

func (e *inputError) Error() string { return e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

func wrapInput(expr string, err error) error {
	if errors.Is(err, engine.ErrMismatchedParentheses) || errors.Is(err, engine.ErrUnknownMode) {
		return &inputError{expr: expr, err: err}
	}
	return err
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
