package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shunt/internal/driver"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] EXPR...",
	Short: "Print the postfix or prefix form of an expression",
	Long: `Convert prints the converted expression with single spaces between tokens.
Arguments are joined with spaces, so quoting the expression is optional.`,
	Example: `  shunt convert "A + B * C"
  shunt convert --mode prefix "( A + B ) * C"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	addModeFlag(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	e := envFrom(cmd)
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
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), out.Result.Notation()); err != nil {
		return err
	}
	e.printTimings(opts.Timer)
	return nil
}
