package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"shunt/internal/advisor"
	"shunt/internal/driver"
	"shunt/internal/engine"
	"shunt/internal/testkit"
	"shunt/internal/tracefmt"
	"shunt/internal/ui"
)

var replayCmd = &cobra.Command{
	Use:   "replay [flags] EXPR...",
	Short: "Step through a conversion interactively",
	Long: `Replay opens a terminal viewer over the recorded steps. Use ←/→ to move,
home/end to jump, space to play or pause and q to quit.

With --load the trace is read from a file written by "shunt trace --format
json" or "--format msgpack" instead of converting EXPR.`,
	Example: `  shunt replay "A + B * C"
  shunt replay --speed 300ms --autoplay "( A + B ) ^ C"
  shunt replay --load trace.json`,
	Args: func(cmd *cobra.Command, args []string) error {
		if load, _ := cmd.Flags().GetString("load"); load != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: runReplay,
}

func init() {
	addModeFlag(replayCmd)
	replayCmd.Flags().Duration("speed", ui.DefaultSpeed, "delay between steps while playing")
	replayCmd.Flags().Bool("autoplay", false, "start playing immediately")
	replayCmd.Flags().Bool("explain", false, "fetch step commentary from [advisor].endpoint")
	replayCmd.Flags().String("load", "", "replay a saved json or msgpack trace")
}

func runReplay(cmd *cobra.Command, args []string) error {
	e := envFrom(cmd)
	if !isTerminal(os.Stdout) {
		return errors.New("replay needs a terminal; use \"shunt trace\" for non-interactive output")
	}

	var res *engine.Result
	var expr string
	if path, _ := cmd.Flags().GetString("load"); path != "" {
		loaded, err := loadTrace(path)
		if err != nil {
			return err
		}
		res, expr = loaded, filepath.Base(path)
	} else {
		opts, err := e.driverOptions(cmd)
		if err != nil {
			return err
		}
		defer closeCache(e, opts.Cache)
		expr = expressionArg(args)
		out, err := driver.Convert(cmd.Context(), expr, opts)
		if err != nil {
			return wrapInput(driver.Normalize(expr), err)
		}
		res, expr = out.Result, out.Expression
	}

	speed, _ := cmd.Flags().GetDuration("speed")
	autoplay, _ := cmd.Flags().GetBool("autoplay")
	ropts := ui.ReplayOptions{Expression: expr, Speed: speed, Autoplay: autoplay}

	if explain, _ := cmd.Flags().GetBool("explain"); explain {
		adv, err := e.advisor()
		if err != nil {
			return err
		}
		ropts.Advisor = adv
		ropts.Annotate = advisor.AnnotateOptions{MaxSteps: e.cfg.Advisor.MaxSteps}
	}

	model := ui.NewReplayModel(cmd.Context(), res, ropts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func (e *env) advisor() (advisor.Advisor, error) {
	endpoint := strings.TrimSpace(e.cfg.Advisor.Endpoint)
	if endpoint == "" {
		return nil, errors.New("--explain needs [advisor].endpoint in shunt.toml")
	}
	timeout := e.cfg.Advisor.Timeout.Duration
	if timeout == 0 {
		timeout = 2 * time.Second
	}
	return advisor.NewHTTP(endpoint, advisor.WithTimeout(timeout)), nil
}

func loadTrace(path string) (*engine.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var res *engine.Result
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp", ".msgpack":
		res, err = tracefmt.ReadMsgpack(f)
	case ".json":
		res, err = tracefmt.ReadJSON(f)
	default:
		return nil, fmt.Errorf("%s: unknown trace format (expected .json, .mp or .msgpack)", path)
	}
	if err != nil {
		return nil, err
	}
	if err := testkit.CheckTraceInvariants(res); err != nil {
		return nil, fmt.Errorf("%s: malformed trace: %w", path, err)
	}
	return res, nil
}
