package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shunt/internal/driver"
	"shunt/internal/tracefmt"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] EXPR...",
	Short: "Split an expression into tokens",
	Long:  `Tokenize shows the tokens the converter works on, with their ids, precedences and byte spans`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	e := envFrom(cmd)
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result := driver.Tokenize(expressionArg(args))
	e.printSkipped(result.Skipped)

	switch format {
	case "pretty":
		return tracefmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens)
	case "json":
		return tracefmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
